package waterfall

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Einzelgaanger/CPF/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp mounts the action handler without the auth stack. The calculate
// path and request validation never touch storage, so a nil handle is fine.
func testApp() *fiber.App {
	engine := services.NewWaterfallEngine(nil, services.DefaultRates())
	app := fiber.New()
	app.Post("/api/waterfall", func(c *fiber.Ctx) error {
		return WaterfallActionAPI(c, engine)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/waterfall", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWaterfallActionCalculate(t *testing.T) {
	app := testApp()

	t.Run("should return the tranche breakdown", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"calculate","obligor_payment_amount":"100000000"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success   bool                     `json:"success"`
			Waterfall services.WaterfallResult `json:"waterfall"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.True(t, body.Waterfall.TrusteeFeesAmount.Equal(decimal.NewFromInt(500_000)))
		assert.True(t, body.Waterfall.AdminFeesAmount.Equal(decimal.NewFromInt(300_000)))
		assert.True(t, body.Waterfall.InterestAmount.Equal(decimal.NewFromInt(8_000_000)))
		assert.True(t, body.Waterfall.PrincipalAmount.Equal(decimal.NewFromInt(91_200_000)))
	})

	t.Run("should honor rate overrides from the body", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"calculate","obligor_payment_amount":"1000000","tax_rate":"0.16","interest_rate":"0"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Waterfall services.WaterfallResult `json:"waterfall"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Waterfall.TaxesAmount.Equal(decimal.NewFromInt(160_000)))
		assert.True(t, body.Waterfall.InterestAmount.IsZero())
	})

	t.Run("should reject a negative payment", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"calculate","obligor_payment_amount":"-5"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should reject an out-of-range rate", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"calculate","obligor_payment_amount":"100","trustee_fee_rate":"1.5"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWaterfallActionDispatch(t *testing.T) {
	app := testApp()

	t.Run("should reject an unknown action", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"detonate"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid action", body.Error)
	})

	t.Run("should reject a missing action", func(t *testing.T) {
		resp := postJSON(t, app, `{"obligor_payment_amount":"100"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should require a distribution id on execute", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"execute_distribution"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should reject a malformed distribution id", func(t *testing.T) {
		resp := postJSON(t, app, `{"action":"execute_distribution","distribution_id":"nope"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
