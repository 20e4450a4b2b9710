// Package config loads runtime configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	ProductsFile   string `yaml:"products_file"`
	SuppliersFile  string `yaml:"suppliers_file"`
	StaffFile      string `yaml:"staff_file"`
	OrdersFile     string `yaml:"orders_file"`
	OrderItemsFile string `yaml:"order_items_file"`
	AuditDB        string `yaml:"audit_db"`

	// RestockOnCancel controls whether cancelling an order returns its
	// quantities to stock. Off by default to match the legacy behavior.
	RestockOnCancel bool `yaml:"restock_on_cancel"`

	BcryptCost int `yaml:"bcrypt_cost"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:        "data",
		ProductsFile:   "products.txt",
		SuppliersFile:  "suppliers.txt",
		StaffFile:      "staff.txt",
		OrdersFile:     "orders.txt",
		OrderItemsFile: "order_items.txt",
		AuditDB:        "audit.db",
		BcryptCost:     bcrypt.DefaultCost,
	}
}

// Load reads path (missing file is fine), then applies .env and
// environment overrides: BMS_DATA_DIR, BMS_AUDIT_DB.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; real environment variables win either way.
	godotenv.Load()
	if v := os.Getenv("BMS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BMS_AUDIT_DB"); v != "" {
		cfg.AuditDB = v
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return cfg, nil
}

// ProductsPath returns the full path of the product file.
func (c Config) ProductsPath() string { return filepath.Join(c.DataDir, c.ProductsFile) }

// SuppliersPath returns the full path of the supplier file.
func (c Config) SuppliersPath() string { return filepath.Join(c.DataDir, c.SuppliersFile) }

// StaffPath returns the full path of the staff file.
func (c Config) StaffPath() string { return filepath.Join(c.DataDir, c.StaffFile) }

// OrdersPath returns the full path of the order file.
func (c Config) OrdersPath() string { return filepath.Join(c.DataDir, c.OrdersFile) }

// OrderItemsPath returns the full path of the order item file.
func (c Config) OrderItemsPath() string { return filepath.Join(c.DataDir, c.OrderItemsFile) }

// AuditDBPath returns the full path of the audit database.
func (c Config) AuditDBPath() string { return filepath.Join(c.DataDir, c.AuditDB) }
