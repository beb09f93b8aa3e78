package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, name string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", name, expected, actual)
}

func TestCalculateWaterfallDefaults(t *testing.T) {
	// 100M with the standard deed rates: 0.5% trustee, 0.3% admin, 8%
	// interest, no withholding tax
	input := WaterfallInput{ObligorPaymentAmount: d("100000000")}
	result := CalculateWaterfall(input, DefaultRates())

	assertDecimalEqual(t, d("0"), result.TaxesAmount, "taxes")
	assertDecimalEqual(t, d("500000"), result.TrusteeFeesAmount, "trustee fees")
	assertDecimalEqual(t, d("300000"), result.AdminFeesAmount, "admin fees")
	assertDecimalEqual(t, d("8000000"), result.InterestAmount, "interest")
	assertDecimalEqual(t, d("91200000"), result.PrincipalAmount, "principal")
	assertDecimalEqual(t, d("0"), result.ResidualAmount, "residual")
	assertDecimalEqual(t, d("100000000"), result.Total(), "total")
}

func TestCalculateWaterfallZeroTotal(t *testing.T) {
	result := CalculateWaterfall(WaterfallInput{ObligorPaymentAmount: decimal.Zero}, DefaultRates())

	assertDecimalEqual(t, decimal.Zero, result.TaxesAmount, "taxes")
	assertDecimalEqual(t, decimal.Zero, result.TrusteeFeesAmount, "trustee fees")
	assertDecimalEqual(t, decimal.Zero, result.AdminFeesAmount, "admin fees")
	assertDecimalEqual(t, decimal.Zero, result.InterestAmount, "interest")
	assertDecimalEqual(t, decimal.Zero, result.PrincipalAmount, "principal")
	assertDecimalEqual(t, decimal.Zero, result.ResidualAmount, "residual")
}

func TestCalculateWaterfallPrincipalOverride(t *testing.T) {
	t.Run("override below remaining leaves a residual", func(t *testing.T) {
		input := WaterfallInput{
			ObligorPaymentAmount: d("100000000"),
			PrincipalAmount:      dp("50000000"),
		}
		result := CalculateWaterfall(input, DefaultRates())

		assertDecimalEqual(t, d("50000000"), result.PrincipalAmount, "principal")
		assertDecimalEqual(t, d("41200000"), result.ResidualAmount, "residual")
		assertDecimalEqual(t, d("100000000"), result.Total(), "total")
	})

	t.Run("override above remaining is capped", func(t *testing.T) {
		input := WaterfallInput{
			ObligorPaymentAmount: d("100000000"),
			PrincipalAmount:      dp("200000000"),
		}
		result := CalculateWaterfall(input, DefaultRates())

		assertDecimalEqual(t, d("91200000"), result.PrincipalAmount, "principal")
		assertDecimalEqual(t, d("0"), result.ResidualAmount, "residual")
	})
}

func TestCalculateWaterfallExplicitRates(t *testing.T) {
	// 16% WHT on 1,000,000 plus explicit overrides for every rate; each
	// tranche is a percentage of the original total, not the remainder
	input := WaterfallInput{
		ObligorPaymentAmount: d("1000000"),
		TaxRate:              dp("0.16"),
		TrusteeFeeRate:       dp("0.01"),
		AdminFeeRate:         dp("0.02"),
		InterestRate:         dp("0.1"),
	}
	result := CalculateWaterfall(input, DefaultRates())

	assertDecimalEqual(t, d("160000"), result.TaxesAmount, "taxes")
	assertDecimalEqual(t, d("10000"), result.TrusteeFeesAmount, "trustee fees")
	assertDecimalEqual(t, d("20000"), result.AdminFeesAmount, "admin fees")
	assertDecimalEqual(t, d("100000"), result.InterestAmount, "interest")
	assertDecimalEqual(t, d("710000"), result.PrincipalAmount, "principal")
	assertDecimalEqual(t, d("1000000"), result.Total(), "total")
}

func TestCalculateWaterfallExplicitZeroBeatsDefault(t *testing.T) {
	// An explicit zero interest rate must not fall back to the 8% default
	input := WaterfallInput{
		ObligorPaymentAmount: d("1000000"),
		InterestRate:         dp("0"),
	}
	result := CalculateWaterfall(input, DefaultRates())

	assertDecimalEqual(t, d("0"), result.InterestAmount, "interest")
	assertDecimalEqual(t, d("992000"), result.PrincipalAmount, "principal")
}

func TestCalculateWaterfallSumProperty(t *testing.T) {
	// Sum of tranches must equal the total; per-tranche rounding drift is
	// absorbed by the principal tranche, so the invariant is exact as long
	// as the rates leave principal non-negative. Documented tolerance for
	// pathological combinations is 0.05.
	totals := []string{"0.01", "1", "33.33", "999.99", "1234567.89", "100000000", "55000001.07"}
	rateSets := []struct {
		tax, trustee, admin, interest string
	}{
		{"0", "0.005", "0.003", "0.08"},
		{"0.16", "0.005", "0.003", "0.08"},
		{"0.3", "0.0001", "0.0007", "0.125"},
		{"0.0333", "0.0123", "0.0456", "0.0789"},
		{"0", "0", "0", "0"},
		{"0.25", "0.25", "0.25", "0.25"},
	}

	for _, total := range totals {
		for _, rs := range rateSets {
			input := WaterfallInput{
				ObligorPaymentAmount: d(total),
				TaxRate:              dp(rs.tax),
				TrusteeFeeRate:       dp(rs.trustee),
				AdminFeeRate:         dp(rs.admin),
				InterestRate:         dp(rs.interest),
			}
			result := CalculateWaterfall(input, DefaultRates())

			diff := result.Total().Sub(d(total)).Abs()
			require.True(t, diff.LessThanOrEqual(d("0.05")),
				"total=%s rates=%+v: tranche sum %s drifted by %s", total, rs, result.Total(), diff)
			assert.False(t, result.Total().GreaterThan(d(total)),
				"total=%s rates=%+v: tranche sum exceeds the payment", total, rs)
		}
	}
}

func TestEffectiveRatesSnapshot(t *testing.T) {
	input := WaterfallInput{
		ObligorPaymentAmount: d("100"),
		TaxRate:              dp("0.1"),
	}
	rates := input.EffectiveRates(DefaultRates())

	assertDecimalEqual(t, d("0.1"), rates.TaxRate, "tax rate")
	assertDecimalEqual(t, d("0.005"), rates.TrusteeFeeRate, "trustee fee rate")
	assertDecimalEqual(t, d("0.003"), rates.AdminFeeRate, "admin fee rate")
	assertDecimalEqual(t, d("0.08"), rates.InterestRate, "interest rate")
}

func TestValidate(t *testing.T) {
	defaults := DefaultRates()
	billID := "f2d9a1de-96c4-4c7a-b62a-6a4a3c62c001"
	deedID := "f2d9a1de-96c4-4c7a-b62a-6a4a3c62c002"
	accountID := "f2d9a1de-96c4-4c7a-b62a-6a4a3c62c003"

	t.Run("rejects negative payment", func(t *testing.T) {
		err := WaterfallInput{ObligorPaymentAmount: d("-1")}.Validate(defaults, false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "obligor_payment_amount", vErr.Field)
	})

	t.Run("calculate accepts zero payment", func(t *testing.T) {
		err := WaterfallInput{ObligorPaymentAmount: decimal.Zero}.Validate(defaults, false)
		assert.NoError(t, err)
	})

	t.Run("create rejects zero payment", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: decimal.Zero,
			BillID:               billID,
			DeedID:               deedID,
			TrustAccountID:       accountID,
		}.Validate(defaults, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "obligor_payment_amount", vErr.Field)
	})

	t.Run("rejects rate above one", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: d("100"),
			InterestRate:         dp("1.5"),
		}.Validate(defaults, false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "interest_rate", vErr.Field)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: d("100"),
			TaxRate:              dp("-0.1"),
		}.Validate(defaults, false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "tax_rate", vErr.Field)
	})

	t.Run("rejects malformed reference ids", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: d("100"),
			BillID:               "not-a-uuid",
			DeedID:               deedID,
			TrustAccountID:       accountID,
		}.Validate(defaults, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "bill_id", vErr.Field)
	})

	t.Run("rejects missing reference ids", func(t *testing.T) {
		err := WaterfallInput{ObligorPaymentAmount: d("100")}.Validate(defaults, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects negative principal override", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: d("100"),
			PrincipalAmount:      dp("-5"),
		}.Validate(defaults, false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "principal_amount", vErr.Field)
	})

	t.Run("accepts well-formed create input", func(t *testing.T) {
		err := WaterfallInput{
			ObligorPaymentAmount: d("100"),
			BillID:               billID,
			DeedID:               deedID,
			TrustAccountID:       accountID,
			TaxRate:              dp("0.16"),
		}.Validate(defaults, true)
		assert.NoError(t, err)
	})
}
