package waterfall

import (
	"database/sql"
	"errors"

	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/services"
	"github.com/gofiber/fiber/v2"
)

// ActionRequest is the dispatch envelope for the waterfall endpoint. The
// embedded WaterfallInput fields sit at the top level of the JSON body,
// matching the shape the dashboard sends.
type ActionRequest struct {
	Action         string `json:"action"`
	DistributionID string `json:"distribution_id"`
	services.WaterfallInput
}

// WaterfallActionAPI dispatches on the action field:
//
//	calculate            — run the waterfall, persist nothing
//	create_distribution  — persist a pending distribution
//	execute_distribution — materialize settlement transactions, flip status
func WaterfallActionAPI(c *fiber.Ctx, engine *services.WaterfallEngine) error {
	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	switch req.Action {
	case "calculate":
		result, err := engine.Calculate(req.WaterfallInput)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "waterfall": result})

	case "create_distribution":
		dist, err := engine.CreateDistribution(req.WaterfallInput)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "distribution": dist})

	case "execute_distribution":
		if req.DistributionID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "distribution_id is required"})
		}
		created, err := engine.ExecuteDistribution(req.DistributionID)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "transactions_created": created})

	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid action"})
	}
}

// engineError maps the engine's error taxonomy onto HTTP statuses:
// validation 400, not found 404, already executed 409 (conflict, expected
// and recoverable), anything else 500 (retryable persistence failure).
func engineError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(400).JSON(fiber.Map{"error": vErr.Error()})
	case errors.Is(err, services.ErrDistributionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyExecuted):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

// GetDistributionsAPI lists recent distributions for the dashboard tab.
func GetDistributionsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", 50)
	distributions, err := database.GetDistributions(db, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch distributions"})
	}
	return c.JSON(fiber.Map{"success": true, "distributions": distributions})
}

// GetTransactionsAPI lists recent settlement transactions, optionally
// scoped to one distribution via ?waterfall_id=.
func GetTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", 50)
	waterfallID := c.Query("waterfall_id")
	transactions, err := database.GetSettlementTransactions(db, waterfallID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settlement transactions"})
	}
	return c.JSON(fiber.Map{"success": true, "transactions": transactions})
}

// GetReconciliationAPI lists recent reconciliation records.
func GetReconciliationAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", 50)
	records, err := database.GetReconciliationRecords(db, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reconciliation records"})
	}
	return c.JSON(fiber.Map{"success": true, "records": records})
}
