package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/easel/internal/config"
	"github.com/JaimeStill/easel/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "2m"

[database]
host = "localhost"
port = 5432
name = "easel"
user = "easel"
password = "easel"
ssl_mode = "disable"

[storage]
provider = "azure"
container_name = "images"
connection_string = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

[api]
base_path = "/api"
max_upload_size = "5MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[generator]
seed = 42
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[storage]
provider = "s3"
endpoint = "minio:9000"
access_key = "minio"
secret_key = "minio123"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Provider != storage.ProviderAzure {
		t.Errorf("storage provider: got %s", cfg.Storage.Provider)
	}
	if cfg.API.MaxUploadSizeBytes() != 5*1024*1024 {
		t.Errorf("max upload: got %d", cfg.API.MaxUploadSizeBytes())
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Generator.Seed != 42 {
		t.Errorf("generator seed: got %d, want 42", cfg.Generator.Seed)
	}
	if cfg.Generator.OutputPrefix != "outputs" || cfg.Generator.ImagePrefix != "images" {
		t.Errorf("generator prefixes: got %s, %s", cfg.Generator.OutputPrefix, cfg.Generator.ImagePrefix)
	}
	if cfg.API.OpenAPI.Title != "Easel API" {
		t.Errorf("openapi title: got %s", cfg.API.OpenAPI.Title)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("EASEL_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if cfg.Storage.Provider != storage.ProviderS3 || cfg.Storage.Endpoint != "minio:9000" {
		t.Errorf("storage: got %s at %s", cfg.Storage.Provider, cfg.Storage.Endpoint)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("EASEL_VERSION", "2.0.0")
	t.Setenv("EASEL_SERVER_PORT", "3000")
	t.Setenv("EASEL_GENERATOR_SEED", "7")
	t.Setenv("EASEL_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Generator.Seed != 7 {
		t.Errorf("generator seed: got %d, want 7", cfg.Generator.Seed)
	}
	if len(cfg.API.CORS.Origins) != 2 {
		t.Errorf("cors origins: got %v", cfg.API.CORS.Origins)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("EASEL_DB_NAME", "testdb")
	t.Setenv("EASEL_STORAGE_PROVIDER", "memory")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path default: got %s", cfg.API.BasePath)
	}
}

func TestLoadDatabase(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "[database]\nhost = \"db.internal\"\nname = \"easel\"\n\n[storage]\nprovider = \"azure\"\n")
	chdir(t, dir)

	t.Setenv("EASEL_DB_USER", "migrator")

	db, err := config.LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase() error = %v", err)
	}

	if db.Host != "db.internal" {
		t.Errorf("host: got %s, want db.internal", db.Host)
	}
	if db.User != "migrator" {
		t.Errorf("user from env: got %s, want migrator", db.User)
	}
	if !strings.HasPrefix(db.URL(), "postgres://migrator:") {
		t.Errorf("url: got %s", db.URL())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"invalid toml", `server = {`, nil, "parse config"},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`, map[string]string{"EASEL_STORAGE_PROVIDER": "memory"}, "shutdown_timeout"},
		{"bad upload size", "[api]\nmax_upload_size = \"lots\"", map[string]string{"EASEL_STORAGE_PROVIDER": "memory"}, "max_upload_size"},
		{"azure without credentials", "", nil, "storage"},
		{"nested base path", "[api]\nbase_path = \"/api/v1\"", map[string]string{"EASEL_STORAGE_PROVIDER": "memory"}, "base_path"},
		{"same prefixes", "[generator]\noutput_prefix = \"blobs\"\nimage_prefix = \"blobs\"", map[string]string{"EASEL_STORAGE_PROVIDER": "memory"}, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tt.content)
			chdir(t, dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnv(t *testing.T) {
	cfg := &config.Config{}
	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}

	t.Setenv("EASEL_ENV", "production")
	if cfg.Env() != "production" {
		t.Errorf("env: got %s, want production", cfg.Env())
	}
}

func TestDurations(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := cfg.ShutdownTimeoutDuration(); got != 30*time.Second {
		t.Errorf("shutdown timeout: got %v", got)
	}
	if got := cfg.Server.WriteTimeoutDuration(); got != 2*time.Minute {
		t.Errorf("write timeout: got %v", got)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("addr: got %s", got)
	}
}
