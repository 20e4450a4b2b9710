package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "data" || cfg.ProductsFile != "products.txt" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.RestockOnCancel {
		t.Error("Restock on cancel must default to off")
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("Expected default bcrypt cost, got %d", cfg.BcryptCost)
	}
}

func TestLoad_YAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bms.yaml")
	body := "data_dir: /var/lib/bms\nrestock_on_cancel: true\nproducts_file: catalog.txt\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/bms" || !cfg.RestockOnCancel {
		t.Errorf("YAML not applied: %+v", cfg)
	}
	if cfg.ProductsPath() != filepath.Join("/var/lib/bms", "catalog.txt") {
		t.Errorf("ProductsPath = %s", cfg.ProductsPath())
	}
	// Untouched fields keep defaults.
	if cfg.StaffFile != "staff.txt" {
		t.Errorf("Default lost: %+v", cfg)
	}
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bms.yaml")
	if err := os.WriteFile(path, []byte("data_dir: from-yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BMS_DATA_DIR", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "from-env" {
		t.Errorf("Expected env override, got %s", cfg.DataDir)
	}
}

func TestLoad_RejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bms.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}
