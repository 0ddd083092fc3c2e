package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PropertyInputs holds everything needed to project a leveraged rental property purchase.
// Rates are percentages on a 0-100 scale; rent and cost components are monthly amounts.
type PropertyInputs struct {
	PurchasePrice    decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	Area             decimal.Decimal `yaml:"area" json:"area"` // m²
	Region           string          `yaml:"region,omitempty" json:"region,omitempty"`
	EnergyEfficiency string          `yaml:"energy_efficiency,omitempty" json:"energy_efficiency,omitempty"`

	// One-time purchase costs
	TransferTaxRate decimal.Decimal `yaml:"transfer_tax_rate" json:"transfer_tax_rate"` // Grunderwerbsteuer, derived from region
	NotaryRate      decimal.Decimal `yaml:"notary_rate" json:"notary_rate"`
	CourtRate       decimal.Decimal `yaml:"court_rate" json:"court_rate"`
	BrokerRate      decimal.Decimal `yaml:"broker_rate" json:"broker_rate"`
	Renovation      decimal.Decimal `yaml:"renovation" json:"renovation"`

	// Rent and ancillary costs (monthly)
	ColdRent                    decimal.Decimal `yaml:"cold_rent" json:"cold_rent"`
	ColdRentPerSqm              decimal.Decimal `yaml:"cold_rent_per_sqm,omitempty" json:"cold_rent_per_sqm,omitempty"`
	WarmRent                    decimal.Decimal `yaml:"warm_rent,omitempty" json:"warm_rent,omitempty"`
	ParkingRent                 decimal.Decimal `yaml:"parking_rent" json:"parking_rent"`
	AncillaryRedistributable    decimal.Decimal `yaml:"ancillary_redistributable" json:"ancillary_redistributable"`
	AncillaryNonRedistributable decimal.Decimal `yaml:"ancillary_non_redistributable" json:"ancillary_non_redistributable"`
	ManagementFee               decimal.Decimal `yaml:"management_fee" json:"management_fee"`
	AdditionalExpenses          decimal.Decimal `yaml:"additional_expenses" json:"additional_expenses"`

	// Financing
	Loan           LoanTerms      `yaml:"loan" json:"loan"`
	SubsidizedLoan SubsidizedLoan `yaml:"subsidized_loan" json:"subsidized_loan"` // KfW tranche

	// Depreciation (AfA)
	DepreciationType         string          `yaml:"depreciation_type,omitempty" json:"depreciation_type,omitempty"`
	ManualTaxSettings        bool            `yaml:"manual_tax_settings" json:"manual_tax_settings"`
	DepreciationRate         decimal.Decimal `yaml:"depreciation_rate" json:"depreciation_rate"`
	SpecialDepreciationRate  decimal.Decimal `yaml:"special_depreciation_rate" json:"special_depreciation_rate"`
	SpecialDepreciationYears int             `yaml:"special_depreciation_years" json:"special_depreciation_years"`

	// Income tax
	ManualTaxRate   bool            `yaml:"manual_tax_rate" json:"manual_tax_rate"`
	MarginalTaxRate decimal.Decimal `yaml:"marginal_tax_rate" json:"marginal_tax_rate"`
	TaxProfile      *TaxProfile     `yaml:"tax_profile,omitempty" json:"tax_profile,omitempty"`

	// Growth assumptions (annual)
	RentGrowthRate     decimal.Decimal `yaml:"rent_growth_rate" json:"rent_growth_rate"`
	PropertyGrowthRate decimal.Decimal `yaml:"property_growth_rate" json:"property_growth_rate"`
}

// LoanTerms describes one annuity loan tranche.
type LoanTerms struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	InterestRate  decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	RepaymentRate decimal.Decimal `yaml:"repayment_rate" json:"repayment_rate"` // initial Tilgung
	TermYears     int             `yaml:"term_years" json:"term_years"`
}

// SubsidizedLoan is the optional second tranche. It is ignored unless Enabled is set.
type SubsidizedLoan struct {
	Enabled   bool `yaml:"enabled" json:"enabled"`
	LoanTerms `yaml:",inline"`
}

// TaxProfile feeds the marginal tax rate estimate when ManualTaxRate is false.
type TaxProfile struct {
	AnnualIncome  decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	MaritalStatus string          `yaml:"marital_status" json:"marital_status"` // single|married
	Children      int             `yaml:"children" json:"children"`
	ChurchTax     bool            `yaml:"church_tax" json:"church_tax"`
	SolidarityTax bool            `yaml:"solidarity_tax" json:"solidarity_tax"`
}

// IsMarried reports whether the joint (splitting) allowance applies.
func (tp *TaxProfile) IsMarried() bool {
	return tp.MaritalStatus == "married"
}

// ActiveSubsidizedLoan returns the KfW tranche terms, or zero terms when the tranche is disabled.
func (p *PropertyInputs) ActiveSubsidizedLoan() LoanTerms {
	if !p.SubsidizedLoan.Enabled {
		return LoanTerms{}
	}
	return p.SubsidizedLoan.LoanTerms
}

// TotalBorrowed sums both tranches.
func (p *PropertyInputs) TotalBorrowed() decimal.Decimal {
	return p.Loan.Amount.Add(p.ActiveSubsidizedLoan().Amount)
}

// PurchaseCostRate is the combined percentage of transfer tax, notary, court and broker fees.
func (p *PropertyInputs) PurchaseCostRate() decimal.Decimal {
	return p.TransferTaxRate.Add(p.NotaryRate).Add(p.CourtRate).Add(p.BrokerRate)
}

// TotalPurchaseCosts returns the one-time acquisition costs including renovation.
func (p *PropertyInputs) TotalPurchaseCosts() decimal.Decimal {
	return p.PurchasePrice.Mul(p.PurchaseCostRate()).Div(decimal.NewFromInt(100)).Add(p.Renovation)
}

// InitialInvestment is the equity the buyer brings: price plus purchase costs minus everything borrowed.
func (p *PropertyInputs) InitialInvestment() decimal.Decimal {
	return p.PurchasePrice.Add(p.TotalPurchaseCosts()).Sub(p.TotalBorrowed())
}

// ProjectionYears is the longer of the two loan terms.
func (p *PropertyInputs) ProjectionYears() int {
	years := p.Loan.TermYears
	if kfw := p.ActiveSubsidizedLoan(); kfw.TermYears > years {
		years = kfw.TermYears
	}
	if years < 0 {
		return 0
	}
	return years
}

// GenerateAssumptions lists the modelling assumptions behind a projection for reports.
func (p *PropertyInputs) GenerateAssumptions() []string {
	assumptions := []string{
		fmt.Sprintf("Rent growth: %s%% annually (cold rent and redistributable costs)", p.RentGrowthRate.StringFixed(1)),
		fmt.Sprintf("Property value growth: %s%% annually", p.PropertyGrowthRate.StringFixed(1)),
		fmt.Sprintf("Marginal tax rate: %s%% (flat, applied to all deductions)", p.MarginalTaxRate.StringFixed(2)),
		fmt.Sprintf("Depreciation: %s%% of purchase price per year", p.DepreciationRate.StringFixed(2)),
	}
	if p.SpecialDepreciationYears > 0 && p.SpecialDepreciationRate.IsPositive() {
		assumptions = append(assumptions, fmt.Sprintf("Special depreciation: %s%% for the first %d years",
			p.SpecialDepreciationRate.StringFixed(2), p.SpecialDepreciationYears))
	}
	assumptions = append(assumptions,
		"Operating costs held constant (no inflation indexing)",
		"Annuity payments fixed at (interest + repayment rate) of the initial loan amount",
	)
	return assumptions
}
