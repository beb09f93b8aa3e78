package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Einzelgaanger/CPF/app/config"
	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/shopspring/decimal"
)

// Seeds the demo environment: MDAs, users for every role, and a batch of
// sample bills for the first suppliers. Safe to re-run; existing users and
// MDAs are skipped.

const demoPassword = "demo1234"

var demoMDAs = []models.MDA{
	{Name: "Ministry of Works and Transport", Code: "MOWT", Sector: "Infrastructure"},
	{Name: "Ministry of Health", Code: "MOH", Sector: "Health"},
	{Name: "Ministry of Education", Code: "MOE", Sector: "Education"},
	{Name: "Ministry of Agriculture", Code: "MOA", Sector: "Agriculture"},
	{Name: "National Treasury", Code: "TRSY", Sector: "Finance"},
}

var supplierCompanies = []string{
	"Apex Construction Ltd", "BuildRight Nigeria", "TechSupply Co", "MedEquip Solutions",
	"FoodServe Enterprises", "CleanEnergy Systems", "TransportPro Ltd", "OfficeMax Supplies",
	"SecureIT Services", "GreenFarm Agro", "WaterWorks Engineering", "PowerGrid Solutions",
}

var spvNames = []string{
	"Alpha Capital SPV", "Beta Investments", "Gamma Finance", "Delta Funding",
	"Epsilon Holdings", "Zeta Capital", "Eta Investments", "Theta Finance",
	"Iota Funding", "Kappa Holdings", "Lambda Capital", "Mu Investments",
}

var billDescriptions = []string{
	"Supply of office equipment and furniture",
	"Road construction and maintenance services",
	"IT infrastructure upgrade and support",
	"Medical supplies and equipment",
	"Catering services for government events",
	"Security services and equipment",
	"Vehicle maintenance and repairs",
	"Building renovation and repairs",
	"Educational materials supply",
	"Agricultural equipment and supplies",
}

func main() {
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	mdas := seedMDAs(db)
	suppliers := seedUsers(db, models.RoleSupplier, 12, func(i int) string {
		return fmt.Sprintf("Supplier User %d", i+1)
	})
	seedSupplierProfiles(db, suppliers)
	seedUsers(db, models.RoleSPV, 12, func(i int) string {
		return fmt.Sprintf("SPV Manager %d", i+1)
	})
	seedUsers(db, models.RoleMDA, 12, func(i int) string {
		return fmt.Sprintf("MDA Officer %d", i+1)
	})
	seedUsers(db, models.RoleTreasury, 3, func(i int) string {
		return fmt.Sprintf("Treasury Officer %d", i+1)
	})
	seedUsers(db, models.RoleAdmin, 1, func(i int) string {
		return "Platform Admin"
	})

	created := seedBills(db, suppliers, mdas)
	log.Printf("Seeding complete: %d sample bills created", created)
}

func seedMDAs(db *sql.DB) []*models.MDA {
	var out []*models.MDA
	for i := range demoMDAs {
		mda := demoMDAs[i]
		if err := database.CreateMDA(db, &mda); err != nil {
			// Already present from a previous run
			log.Printf("Skipping MDA %s: %v", mda.Code, err)
			continue
		}
		out = append(out, &mda)
	}
	if len(out) == 0 {
		existing, err := database.GetMDAs(db)
		if err != nil {
			log.Fatal("Failed to load MDAs:", err)
		}
		out = existing
	}
	return out
}

func seedUsers(db *sql.DB, role string, count int, nameFor func(int) string) []*models.User {
	var out []*models.User
	for i := 0; i < count; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%s%d@demo.com", role, i+1),
			Password: demoPassword,
			FullName: nameFor(i),
			Phone:    fmt.Sprintf("+254700%06d", i+1),
		}
		if err := database.CreateUser(db, user, role); err != nil {
			log.Printf("Skipping user %s: %v", user.Email, err)
			continue
		}
		out = append(out, user)
	}
	log.Printf("Seeded %d %s users", len(out), role)
	return out
}

func seedSupplierProfiles(db *sql.DB, suppliers []*models.User) {
	banks := []string{"Kenya Commercial Bank", "Equity Bank", "Co-operative Bank", "Absa Bank"}
	for i, supplier := range suppliers {
		company := supplierCompanies[i%len(supplierCompanies)]
		reg := fmt.Sprintf("RC%06d", 100000+i)
		tin := fmt.Sprintf("TIN%06d", 200000+i)
		bank := banks[i%len(banks)]
		account := fmt.Sprintf("%010d", 1000000000+i)
		address := fmt.Sprintf("%d Industrial Avenue, Nairobi", i+1)

		profile := &models.Profile{
			UserID:             supplier.ID,
			CompanyName:        &company,
			RegistrationNumber: &reg,
			TaxID:              &tin,
			BankName:           &bank,
			BankAccount:        &account,
			Address:            &address,
			ProfileCompleted:   true,
		}
		if err := database.UpsertProfile(db, profile); err != nil {
			log.Printf("Failed to create profile for %s: %v", supplier.Email, err)
		}
	}
}

func seedBills(db *sql.DB, suppliers []*models.User, mdas []*models.MDA) int {
	if len(mdas) == 0 {
		return 0
	}

	created := 0
	limit := len(suppliers)
	if limit > 8 {
		limit = 8
	}

	for i := 0; i < limit; i++ {
		supplier := suppliers[i]
		mda := mdas[i%len(mdas)]

		// 2-3 bills per supplier, 5M to 55M each
		numBills := 2 + i%2
		for j := 0; j < numBills; j++ {
			amount := decimal.NewFromInt(int64(5+(i*7+j*13)%50) * 1_000_000)
			invoiceDate := time.Now().AddDate(0, 0, -((i*3 + j*5) % 30))

			bill := &models.Bill{
				SupplierID:        supplier.ID,
				MDAID:             mda.ID,
				InvoiceNumber:     fmt.Sprintf("INV-%d-%04d", time.Now().Year(), i*10+j+1),
				InvoiceDate:       invoiceDate,
				DueDate:           invoiceDate.AddDate(0, 0, 90),
				Amount:            amount,
				Currency:          "KES",
				Description:       billDescriptions[(i+j)%len(billDescriptions)],
				WorkDescription:   fmt.Sprintf("Completed work as per contract agreement for %s", mda.Name),
				ContractReference: fmt.Sprintf("CTR-%d-%04d", time.Now().Year()-1, i*10+j+100),
			}
			if err := database.CreateBill(db, bill); err != nil {
				log.Printf("Skipping bill %s: %v", bill.InvoiceNumber, err)
				continue
			}
			created++
		}
	}
	return created
}
