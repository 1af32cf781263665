package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a superadmin and a demo tenant for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"report_logs", "attendance", "payment_logs", "payments",
				"order_details", "orders", "products", "customers", "localities",
				"token_blacklist", "sessions", "employees", "admins", "companies",
				"superadmins",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		superadminUsername := "root"
		var exists int
		row := db.Raw("SELECT 1 FROM superadmins WHERE username = ?", superadminUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("superadmin already exists, skipping seed")
			return
		}

		if err := db.Exec(
			"INSERT INTO superadmins (username, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
			superadminUsername, "Root Superadmin", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert superadmin: %v", err)
		}
		fmt.Println("Seeded superadmin:", superadminUsername)

		var superadminID int64
		if err := db.Raw("SELECT id FROM superadmins WHERE username = ?", superadminUsername).Row().Scan(&superadminID); err != nil {
			log.Fatalf("failed to lookup superadmin id: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO companies (name, email, phone, address, status, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, 'ACTIVE', ?, now(), now())",
			"Demo Trading Co", "demo@trading.example", "081234567890", "Jl. Demo No. 1", superadminID).Error; err != nil {
			log.Fatalf("failed to insert demo company: %v", err)
		}

		var companyID int64
		if err := db.Raw("SELECT id FROM companies WHERE name = ?", "Demo Trading Co").Row().Scan(&companyID); err != nil {
			log.Fatalf("failed to lookup demo company id: %v", err)
		}
		fmt.Println("Seeded demo company:", companyID)

		if err := db.Exec(
			"INSERT INTO admins (company_id, name, username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			companyID, "Demo Admin", "demoadmin", "admin@trading.example", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo admin: %v", err)
		}
		fmt.Println("Seeded demo admin: demoadmin")

		var adminID int64
		if err := db.Raw("SELECT id FROM admins WHERE username = ?", "demoadmin").Row().Scan(&adminID); err != nil {
			log.Fatalf("failed to lookup demo admin id: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO employees (company_id, name, phone, email, address, password_hash, status, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, 'ACTIVE', ?, now(), now())",
			companyID, "Demo Employee", "089876543210", "employee@trading.example", "Jl. Demo No. 2", string(hash), adminID).Error; err != nil {
			log.Fatalf("failed to insert demo employee: %v", err)
		}
		fmt.Println("Seeded demo employee")

		if err := db.Exec(
			"INSERT INTO localities (company_id, name, description, created_by, updated_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			companyID, "Pusat Kota", "central district", adminID, adminID).Error; err != nil {
			log.Fatalf("failed to insert demo locality: %v", err)
		}

		products := []struct {
			Name  string
			Price int64
			Unit  string
		}{
			{"Beras Premium 5kg", 75000, "sack"},
			{"Minyak Goreng 2L", 38000, "bottle"},
			{"Gula Pasir 1kg", 16000, "pack"},
		}
		for _, p := range products {
			if err := db.Exec(
				"INSERT INTO products (company_id, name, description, unit_price, unit, created_by, updated_by, created_at, updated_at) VALUES (?, ?, '', ?, ?, ?, ?, now(), now())",
				companyID, p.Name, p.Price, p.Unit, adminID, adminID).Error; err != nil {
				log.Fatalf("failed to insert product %s: %v", p.Name, err)
			}
		}
		fmt.Println("Seeded demo catalog")

		fmt.Println("Seed complete. Logins use password:", password)
	},
}
