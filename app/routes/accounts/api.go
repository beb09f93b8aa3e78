package accounts

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var accountNames = map[models.AccountType]string{
	models.AccountCustody:      "SPV Custody Account",
	models.AccountSettlement:   "Settlement Account",
	models.AccountCollection:   "Collection Account",
	models.AccountDistribution: "Distribution Account",
}

// GetTrustAccountsAPI lists trust accounts; SPVs see their own, treasury
// and admin see everything.
func GetTrustAccountsAPI(c *fiber.Ctx, db *sql.DB) error {
	spvID := c.Query("spv_id")
	roles, _ := c.Locals("user_roles").([]string)
	for _, role := range roles {
		if role == models.RoleSPV {
			spvID = auth.UserID(c)
		}
	}

	accounts, err := database.GetTrustAccounts(db, spvID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch trust accounts"})
	}
	return c.JSON(fiber.Map{"success": true, "accounts": accounts})
}

// CreateTrustAccountAPI opens a segregated account for the calling SPV.
func CreateTrustAccountAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateRequest struct {
		AccountType string `json:"account_type"`
		AccountName string `json:"account_name"`
		BankName    string `json:"bank_name"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	accountType := models.AccountType(req.AccountType)
	defaultName, ok := accountNames[accountType]
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "account_type must be one of custody, settlement, collection, distribution"})
	}

	name := req.AccountName
	if name == "" {
		name = defaultName
	}

	account := &models.TrustAccount{
		SPVID:       auth.UserID(c),
		AccountType: accountType,
		AccountName: name,
		BankName:    req.BankName,
		Balance:     decimal.Zero,
	}

	if err := database.CreateTrustAccount(db, account); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create trust account"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "account": account})
}

func GetTrustAccountByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	account, err := database.GetTrustAccountByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Trust account not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch trust account"})
	}
	return c.JSON(fiber.Map{"success": true, "account": account})
}
