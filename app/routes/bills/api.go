package bills

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetBillsAPI returns bills with optional filtering by status, supplier and
// MDA. Suppliers only ever see their own bills.
func GetBillsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.BillFilters{
		SupplierID: c.Query("supplier_id"),
		MDAID:      c.Query("mda_id"),
		Status:     c.Query("status"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}

	roles, _ := c.Locals("user_roles").([]string)
	for _, role := range roles {
		if role == models.RoleSupplier {
			filters.SupplierID = auth.UserID(c)
		}
	}

	bills, err := database.GetBills(db, filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bills"})
	}
	return c.JSON(fiber.Map{"success": true, "bills": bills})
}

func GetBillByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	bill, err := database.GetBillByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Bill not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bill"})
	}
	return c.JSON(fiber.Map{"success": true, "bill": bill})
}

// SubmitBillAPI creates a new bill for the authenticated supplier.
func SubmitBillAPI(c *fiber.Ctx, db *sql.DB) error {
	type SubmitRequest struct {
		MDAID             string          `json:"mda_id"`
		InvoiceNumber     string          `json:"invoice_number"`
		InvoiceDate       string          `json:"invoice_date"`
		DueDate           string          `json:"due_date"`
		Amount            decimal.Decimal `json:"amount"`
		Currency          string          `json:"currency"`
		Description       string          `json:"description"`
		WorkDescription   string          `json:"work_description"`
		ContractReference string          `json:"contract_reference"`
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := uuid.Parse(req.MDAID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "mda_id must be a valid UUID"})
	}
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "invoice_number is required"})
	}
	if !req.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be greater than zero"})
	}

	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invoice_date must be YYYY-MM-DD"})
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "due_date must be YYYY-MM-DD"})
	}

	currency := req.Currency
	if currency == "" {
		currency = "KES"
	}

	bill := &models.Bill{
		SupplierID:        auth.UserID(c),
		MDAID:             req.MDAID,
		InvoiceNumber:     req.InvoiceNumber,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		Amount:            req.Amount,
		Currency:          currency,
		Description:       req.Description,
		WorkDescription:   req.WorkDescription,
		ContractReference: req.ContractReference,
	}

	if err := database.CreateBill(db, bill); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to submit bill"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "bill": bill})
}

// allowed transitions by actor role
var statusActions = map[string]struct {
	status models.BillStatus
	roles  []string
}{
	"review":  {models.BillUnderReview, []string{models.RoleMDA, models.RoleAdmin}},
	"verify":  {models.BillVerified, []string{models.RoleMDA, models.RoleAdmin}},
	"reject":  {models.BillRejected, []string{models.RoleMDA, models.RoleAdmin}},
	"certify": {models.BillCertified, []string{models.RoleTreasury, models.RoleAdmin}},
	"settle":  {models.BillSettled, []string{models.RoleTreasury, models.RoleAdmin}},
}

// TransitionBillAPI moves a bill through the verification pipeline. The
// action name is the URL segment, e.g. POST /api/bills/:id/verify.
func TransitionBillAPI(c *fiber.Ctx, db *sql.DB, action string) error {
	spec, ok := statusActions[action]
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid action"})
	}

	roles, _ := c.Locals("user_roles").([]string)
	allowed := false
	for _, have := range roles {
		for _, want := range spec.roles {
			if have == want {
				allowed = true
			}
		}
	}
	if !allowed {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	type TransitionRequest struct {
		Note string `json:"note"`
	}
	var req TransitionRequest
	_ = c.BodyParser(&req)

	err := database.UpdateBillStatus(db, c.Params("id"), spec.status, auth.UserID(c), req.Note)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Bill not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update bill"})
	}
	return c.JSON(fiber.Map{"success": true, "status": spec.status})
}

// PurchaseBillAPI records an SPV purchasing a verified bill under a trust
// deed at a discount.
func PurchaseBillAPI(c *fiber.Ctx, db *sql.DB) error {
	type PurchaseRequest struct {
		PurchasePrice decimal.Decimal `json:"purchase_price"`
		DiscountRate  decimal.Decimal `json:"discount_rate"`
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.PurchasePrice.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "purchase_price must be greater than zero"})
	}

	billID := c.Params("id")
	if _, err := uuid.Parse(billID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bill id must be a valid UUID"})
	}

	deed := &models.Deed{
		BillID:        billID,
		SPVID:         auth.UserID(c),
		DeedReference: newDeedReference(),
		PurchasePrice: req.PurchasePrice,
		DiscountRate:  req.DiscountRate,
	}

	if err := database.PurchaseBill(db, deed); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "deed": deed})
}

func newDeedReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("DEED-%s-%s", time.Now().Format("2006"), suffix)
}

func GetBillStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetBillStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bill stats"})
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
