package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateDefaults holds the waterfall rates applied when the caller omits an
// override. Values are fractions, e.g. 0.005 for 0.5%.
type RateDefaults struct {
	TaxRate        decimal.Decimal
	TrusteeFeeRate decimal.Decimal
	AdminFeeRate   decimal.Decimal
	InterestRate   decimal.Decimal
}

// DefaultRates returns the trust deed's standard rates: no withholding tax,
// 0.5% trustee fee, 0.3% admin fee, 8% investor interest.
func DefaultRates() RateDefaults {
	return RateDefaults{
		TaxRate:        decimal.Zero,
		TrusteeFeeRate: decimal.NewFromFloat(0.005),
		AdminFeeRate:   decimal.NewFromFloat(0.003),
		InterestRate:   decimal.NewFromFloat(0.08),
	}
}

// WaterfallInput is the request to allocate one obligor payment. Rate
// pointers distinguish "omitted, use default" from an explicit zero.
type WaterfallInput struct {
	BillID               string           `json:"bill_id"`
	DeedID               string           `json:"deed_id"`
	TrustAccountID       string           `json:"trust_account_id"`
	ObligorPaymentAmount decimal.Decimal  `json:"obligor_payment_amount"`
	TaxRate              *decimal.Decimal `json:"tax_rate,omitempty"`
	TrusteeFeeRate       *decimal.Decimal `json:"trustee_fee_rate,omitempty"`
	AdminFeeRate         *decimal.Decimal `json:"admin_fee_rate,omitempty"`
	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	PrincipalAmount      *decimal.Decimal `json:"principal_amount,omitempty"`
}

// WaterfallResult holds the six computed tranche amounts.
type WaterfallResult struct {
	TaxesAmount       decimal.Decimal `json:"taxes_amount"`
	TrusteeFeesAmount decimal.Decimal `json:"trustee_fees_amount"`
	AdminFeesAmount   decimal.Decimal `json:"admin_fees_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	ResidualAmount    decimal.Decimal `json:"residual_amount"`
}

var one = decimal.NewFromInt(1)

// EffectiveRates resolves the four rates actually used, falling back to the
// defaults for any the caller omitted. The resolved rates are what gets
// snapshotted onto a persisted distribution.
func (in WaterfallInput) EffectiveRates(defaults RateDefaults) RateDefaults {
	rates := defaults
	if in.TaxRate != nil {
		rates.TaxRate = *in.TaxRate
	}
	if in.TrusteeFeeRate != nil {
		rates.TrusteeFeeRate = *in.TrusteeFeeRate
	}
	if in.AdminFeeRate != nil {
		rates.AdminFeeRate = *in.AdminFeeRate
	}
	if in.InterestRate != nil {
		rates.InterestRate = *in.InterestRate
	}
	return rates
}

// Validate checks the input before any calculation or persistence.
// requireRefs is set for create_distribution, where the bill/deed/account
// references must be well-formed UUIDs and the payment must be positive;
// a bare calculate only requires a non-negative payment.
func (in WaterfallInput) Validate(defaults RateDefaults, requireRefs bool) error {
	if in.ObligorPaymentAmount.IsNegative() {
		return &ValidationError{Field: "obligor_payment_amount", Message: "must not be negative"}
	}
	if requireRefs {
		if !in.ObligorPaymentAmount.IsPositive() {
			return &ValidationError{Field: "obligor_payment_amount", Message: "must be greater than zero"}
		}
		for field, id := range map[string]string{
			"bill_id":          in.BillID,
			"deed_id":          in.DeedID,
			"trust_account_id": in.TrustAccountID,
		} {
			if id == "" {
				return &ValidationError{Field: field, Message: "is required"}
			}
			if _, err := uuid.Parse(id); err != nil {
				return &ValidationError{Field: field, Message: "must be a valid UUID"}
			}
		}
	}

	rates := in.EffectiveRates(defaults)
	for field, rate := range map[string]decimal.Decimal{
		"tax_rate":         rates.TaxRate,
		"trustee_fee_rate": rates.TrusteeFeeRate,
		"admin_fee_rate":   rates.AdminFeeRate,
		"interest_rate":    rates.InterestRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return &ValidationError{Field: field, Message: "must be between 0 and 1"}
		}
	}

	if in.PrincipalAmount != nil && in.PrincipalAmount.IsNegative() {
		return &ValidationError{Field: "principal_amount", Message: "must not be negative"}
	}

	return nil
}

// CalculateWaterfall allocates an obligor payment across the contractual
// priority order: taxes, trustee fee, admin fee, investor interest,
// principal, residual. Pure function, no I/O.
//
// Each percentage tranche is computed off the ORIGINAL payment amount, not
// the shrinking remainder — the trust deed fixes every party's cut as a
// fraction of the payment received. Each tranche is independently rounded
// to 2 decimal places, half away from zero, so the sum of tranches can
// drift from the total by up to 0.04 (four rounded tranches at half a cent
// each) in pathological rate combinations. That drift is an accepted
// tolerance, absorbed by the principal tranche, not an error.
func CalculateWaterfall(input WaterfallInput, defaults RateDefaults) WaterfallResult {
	total := input.ObligorPaymentAmount
	rates := input.EffectiveRates(defaults)

	// Priority 1: taxes and statutory charges
	taxes := total.Mul(rates.TaxRate).Round(2)
	remaining := total.Sub(taxes)

	// Priority 2: trustee and administrative fees
	trusteeFees := total.Mul(rates.TrusteeFeeRate).Round(2)
	remaining = remaining.Sub(trusteeFees)

	adminFees := total.Mul(rates.AdminFeeRate).Round(2)
	remaining = remaining.Sub(adminFees)

	// Priority 3: interest to investors
	interest := total.Mul(rates.InterestRate).Round(2)
	remaining = remaining.Sub(interest)

	// Priority 4: principal repayment, capped at whatever is left
	principal := remaining
	if input.PrincipalAmount != nil {
		principal = decimal.Min(*input.PrincipalAmount, remaining)
	}
	remaining = remaining.Sub(principal)

	// Priority 5: residual, only non-zero when an override principal left
	// money on the table
	residual := decimal.Max(decimal.Zero, remaining.Round(2))

	return WaterfallResult{
		TaxesAmount:       taxes,
		TrusteeFeesAmount: trusteeFees,
		AdminFeesAmount:   adminFees,
		InterestAmount:    interest,
		PrincipalAmount:   principal,
		ResidualAmount:    residual,
	}
}

// Total sums the six tranches.
func (r WaterfallResult) Total() decimal.Decimal {
	return r.TaxesAmount.
		Add(r.TrusteeFeesAmount).
		Add(r.AdminFeesAmount).
		Add(r.InterestAmount).
		Add(r.PrincipalAmount).
		Add(r.ResidualAmount)
}
