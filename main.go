package main

import (
	"flag"
	"log"
	"os"

	"bms/internal/audit"
	"bms/internal/auth"
	"bms/internal/config"
	"bms/internal/orders"
	"bms/internal/repo"
)

func main() {
	configPath := flag.String("config", "bms.yaml", "Path to YAML config file")
	dataDir := flag.String("data", "", "Data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config load failed: ", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("data dir: ", err)
	}

	products, err := repo.OpenProducts(cfg.ProductsPath())
	if err != nil {
		log.Fatal("load products: ", err)
	}
	suppliers, err := repo.OpenSuppliers(cfg.SuppliersPath())
	if err != nil {
		log.Fatal("load suppliers: ", err)
	}
	staff, err := repo.OpenStaff(cfg.StaffPath())
	if err != nil {
		log.Fatal("load staff: ", err)
	}
	orderRepo, err := repo.OpenOrders(cfg.OrdersPath(), cfg.OrderItemsPath())
	if err != nil {
		log.Fatal("load orders: ", err)
	}

	if err := auth.EnsureDefaults(staff, suppliers, cfg.BcryptCost); err != nil {
		log.Fatal("seed default accounts: ", err)
	}

	trail, err := audit.Open(cfg.AuditDBPath())
	if err != nil {
		log.Fatal("open audit db: ", err)
	}
	defer trail.Close()

	app := &app{
		cfg:       cfg,
		products:  products,
		suppliers: suppliers,
		staff:     staff,
		orders:    orderRepo,
		orderSvc: &orders.Service{
			Orders:          orderRepo,
			Products:        products,
			RestockOnCancel: cfg.RestockOnCancel,
		},
		trail: trail,
		in:    os.Stdin,
		out:   os.Stdout,
	}
	app.run()
}
