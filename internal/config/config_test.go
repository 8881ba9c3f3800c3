package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-service
server:
  addr: ":9001"
database:
  host: localhost
  port: 5432
  name: test_db
  user: testuser
  password: testpass
ingest:
  csv_path: testdata/stocks.csv
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-service" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-service")
	}
	if cfg.Server.Addr != ":9001" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9001")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Ingest.CSVPath != "testdata/stocks.csv" {
		t.Errorf("Ingest.CSVPath = %q, want %q", cfg.Ingest.CSVPath, "testdata/stocks.csv")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-service
database:
  host: localhost
  name: test_db
  user: testuser
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-service
database:
  host: localhost
  name: test_db
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Query.DefaultLimit != DefaultQueryLimit {
		t.Errorf("Query.DefaultLimit = %d, want %d", cfg.Query.DefaultLimit, DefaultQueryLimit)
	}
	if cfg.Query.MaxLimit != DefaultMaxLimit {
		t.Errorf("Query.MaxLimit = %d, want %d", cfg.Query.MaxLimit, DefaultMaxLimit)
	}
	if cfg.Query.FlatThresholdPct != DefaultFlatThresholdPct {
		t.Errorf("Query.FlatThresholdPct = %v, want %v", cfg.Query.FlatThresholdPct, DefaultFlatThresholdPct)
	}
	if cfg.Query.Timeout != DefaultQueryTimeout {
		t.Errorf("Query.Timeout = %v, want %v", cfg.Query.Timeout, DefaultQueryTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() *ServiceConfig {
		cfg := &ServiceConfig{}
		cfg.Instance.ID = "test"
		cfg.Database = DBConfig{
			Host: "localhost", Name: "db", User: "u", Password: "p",
		}
		cfg.ApplyDefaults()
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing instance id", func(t *testing.T) {
		cfg := base()
		cfg.Instance.ID = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("missing db password", func(t *testing.T) {
		cfg := base()
		cfg.Database.Password = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("max limit below default", func(t *testing.T) {
		cfg := base()
		cfg.Query.MaxLimit = 10
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("min conns above max", func(t *testing.T) {
		cfg := base()
		cfg.Database.MinConns = 20
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})
}
