package generator

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

//go:embed resource
var resources embed.FS

// DefaultOutput is selected when no rule matches.
const DefaultOutput = "dog_v1.jpeg"

// Rule selects one of Candidates when every keyword appears in the text.
type Rule struct {
	Keywords   []string `json:"keywords"`
	Candidates []string `json:"candidates"`
}

// Matches reports whether every keyword is a case-sensitive substring of text.
func (r Rule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// rules is evaluated top to bottom. Order matters: "a dark dog" selects dark_grey.jpg.
var rules = []Rule{
	{Keywords: []string{"dark"}, Candidates: []string{"dark_grey.jpg"}},
	{Keywords: []string{"jacket"}, Candidates: []string{"jacket.png"}},
	{Keywords: []string{"shoe"}, Candidates: []string{"model_outfit_hat_bag_shoe_v1.png", "model_outfit_hat_bag_shoe_v2.png"}},
	{Keywords: []string{"sketch"}, Candidates: []string{"sketch_trees.jpg"}},
	{Keywords: []string{"sunglasses"}, Candidates: []string{"sunglasses_face.png"}},
	{Keywords: []string{"triangular"}, Candidates: []string{"triangular_windows.jpg"}},
	{Keywords: []string{"chair"}, Candidates: []string{"white_flower.jpg"}},
	{Keywords: []string{"skirt"}, Candidates: []string{"white_top_black_skirt_v1.png"}},
	{Keywords: []string{"dog"}, Candidates: []string{"dog_v1.jpeg", "dog_v2.jpeg"}},
	{Keywords: []string{"golden"}, Candidates: []string{"golden-retriever.jpg"}},
}

// Concat joins prompt texts with single spaces, preserving order.
func Concat(texts []string) string {
	return strings.Join(texts, " ")
}

// Selector picks a bundled sample image for a block of prompt text.
// It is safe for concurrent use.
type Selector struct {
	rules    []Rule
	fallback string
	fsys     fs.FS

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector over the keyword table and the embedded sample set.
// A zero seed draws a random one; any other seed makes tie-breaks reproducible.
func NewSelector(seed uint64) *Selector {
	sub, err := fs.Sub(resources, "resource")
	if err != nil {
		panic(fmt.Sprintf("generator: embedded resources: %v", err))
	}

	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Selector{
		rules:    rules,
		fallback: DefaultOutput,
		fsys:     sub,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Select returns the filename chosen for text. The first matching rule wins
// and one of its candidates is drawn uniformly.
func (s *Selector) Select(text string) string {
	for _, rule := range s.rules {
		if !rule.Matches(text) {
			continue
		}
		if len(rule.Candidates) == 1 {
			return rule.Candidates[0]
		}
		s.mu.Lock()
		i := s.rng.IntN(len(rule.Candidates))
		s.mu.Unlock()
		return rule.Candidates[i]
	}
	return s.fallback
}

// Read returns the bytes of the named sample. Names that are not regular
// files, including directories, are unknown.
func (s *Selector) Read(name string) ([]byte, error) {
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
		}
		return nil, fmt.Errorf("stat sample %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read sample %s: %w", name, err)
	}
	return data, nil
}

// Catalog lists the selection rules followed by the default output.
// The rules are deep copies; changing them does not affect selection.
func (s *Selector) Catalog() ([]Rule, string) {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = Rule{
			Keywords:   slices.Clone(r.Keywords),
			Candidates: slices.Clone(r.Candidates),
		}
	}
	return out, s.fallback
}
