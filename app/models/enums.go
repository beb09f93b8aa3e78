package models

// BillStatus defines the lifecycle states of a supplier bill.
type BillStatus string

const (
	BillSubmitted   BillStatus = "submitted"
	BillUnderReview BillStatus = "under_review"
	BillVerified    BillStatus = "verified"
	BillRejected    BillStatus = "rejected"
	BillCertified   BillStatus = "certified"
	BillPurchased   BillStatus = "purchased"
	BillObligorPaid BillStatus = "obligor_paid"
	BillSettled     BillStatus = "settled"
)

// DistributionStatus defines the lifecycle of a waterfall distribution.
// Forward-only: pending -> distributed. There is no rollback transition;
// a reversal is a new compensating distribution.
type DistributionStatus string

const (
	DistributionPending     DistributionStatus = "pending"
	DistributionDistributed DistributionStatus = "distributed"
)

// TransactionType tags a settlement transaction with the tranche or cash
// movement it represents.
type TransactionType string

const (
	TxObligorPayment       TransactionType = "obligor_payment"
	TxTaxDeduction         TransactionType = "tax_deduction"
	TxTrusteeFee           TransactionType = "trustee_fee"
	TxAdminFee             TransactionType = "admin_fee"
	TxInterestPayment      TransactionType = "interest_payment"
	TxPrincipalRepayment   TransactionType = "principal_repayment"
	TxResidualDistribution TransactionType = "residual_distribution"
	TxSupplierPayment      TransactionType = "supplier_payment"
)

// TransactionStatus defines the settlement transaction states. The waterfall
// engine only ever writes "authorized"; advancement to settled/reconciled is
// owned by the downstream reconciliation process.
type TransactionStatus string

const (
	TxAuthorized TransactionStatus = "authorized"
	TxSettled    TransactionStatus = "settled"
	TxReconciled TransactionStatus = "reconciled"
)

// AccountType defines the segregated trust account types.
type AccountType string

const (
	AccountCustody      AccountType = "custody"
	AccountSettlement   AccountType = "settlement"
	AccountCollection   AccountType = "collection"
	AccountDistribution AccountType = "distribution"
)

// AccountStatus defines the trust account states.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
	AccountClosed AccountStatus = "closed"
)

// ReconciliationStatus defines the outcome of a reconciliation record.
type ReconciliationStatus string

const (
	ReconciliationPending     ReconciliationStatus = "pending"
	ReconciliationMatched     ReconciliationStatus = "matched"
	ReconciliationDiscrepancy ReconciliationStatus = "discrepancy"
)

// Platform roles. Assigned through user_roles; carried in JWT claims.
const (
	RoleSupplier = "supplier"
	RoleSPV      = "spv"
	RoleMDA      = "mda"
	RoleTreasury = "treasury"
	RoleAdmin    = "admin"
)
