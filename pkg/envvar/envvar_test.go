package envvar_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/easel/pkg/envvar"
)

func TestString(t *testing.T) {
	t.Setenv("EASEL_TEST_STRING", "override")

	v := "default"
	envvar.String(&v, "EASEL_TEST_STRING")
	if v != "override" {
		t.Errorf("String() = %q, want override", v)
	}

	envvar.String(&v, "")
	if v != "override" {
		t.Errorf("empty name changed value to %q", v)
	}
}

func TestIntIgnoresInvalid(t *testing.T) {
	t.Setenv("EASEL_TEST_INT", "not-a-number")

	n := 42
	envvar.Int(&n, "EASEL_TEST_INT")
	if n != 42 {
		t.Errorf("Int() = %d, want 42", n)
	}

	t.Setenv("EASEL_TEST_INT", "7")
	envvar.Int(&n, "EASEL_TEST_INT")
	if n != 7 {
		t.Errorf("Int() = %d, want 7", n)
	}
}

func TestInt64(t *testing.T) {
	t.Setenv("EASEL_TEST_INT64", "9000000000")

	var n int64
	envvar.Int64(&n, "EASEL_TEST_INT64")
	if n != 9000000000 {
		t.Errorf("Int64() = %d, want 9000000000", n)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("EASEL_TEST_BOOL", "true")

	var b bool
	envvar.Bool(&b, "EASEL_TEST_BOOL")
	if !b {
		t.Error("Bool() = false, want true")
	}
}

func TestList(t *testing.T) {
	t.Setenv("EASEL_TEST_LIST", " a, b ,,c ")

	var list []string
	envvar.List(&list, "EASEL_TEST_LIST")

	want := []string{"a", "b", "c"}
	if !slices.Equal(list, want) {
		t.Errorf("List() = %v, want %v", list, want)
	}
}

func TestUnsetLeavesValue(t *testing.T) {
	v := "keep"
	envvar.String(&v, "EASEL_TEST_UNSET_VARIABLE")
	if v != "keep" {
		t.Errorf("String() = %q, want keep", v)
	}
}

func TestUint64(t *testing.T) {
	t.Setenv("EASEL_TEST_UINT64", "18446744073709551615")

	var v uint64
	envvar.Uint64(&v, "EASEL_TEST_UINT64")
	if v != 18446744073709551615 {
		t.Errorf("got %d", v)
	}

	t.Setenv("EASEL_TEST_UINT64", "-1")
	envvar.Uint64(&v, "EASEL_TEST_UINT64")
	if v != 18446744073709551615 {
		t.Errorf("negative value should be ignored, got %d", v)
	}
}
