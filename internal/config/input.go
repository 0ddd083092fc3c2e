package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInputs marks validation failures of property inputs
var ErrInvalidInputs = errors.New("invalid inputs")

// maxLoanTermYears bounds the projection length
const maxLoanTermYears = 50

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	return ip.Parse(data, format)
}

// Parse decodes, resolves defaults and validates a configuration document
func (ip *InputParser) Parse(data []byte, format string) (*domain.Configuration, error) {
	var config domain.Configuration
	switch format {
	case "json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	ip.ApplyDefaults(&config)

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults resolves derived inputs of every scenario
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	for i := range config.Scenarios {
		ApplyInputDefaults(&config.Scenarios[i].Inputs)
	}
}

// ApplyInputDefaults fills the values the inputs derive from presets:
// the regional transfer tax when none is given, the depreciation preset unless
// manual_tax_settings is set, and the estimated marginal rate unless manual_tax_rate is set.
func ApplyInputDefaults(inputs *domain.PropertyInputs) {
	if inputs.TransferTaxRate.IsZero() && inputs.Region != "" {
		inputs.TransferTaxRate = domain.TransferTaxRate(inputs.Region)
	}

	if !inputs.ManualTaxSettings && inputs.DepreciationType != "" {
		if preset, ok := domain.LookupDepreciationPreset(inputs.DepreciationType); ok {
			inputs.DepreciationRate = preset.Rate
			inputs.SpecialDepreciationRate = preset.SpecialRate
			inputs.SpecialDepreciationYears = preset.SpecialYears
		}
	}

	if !inputs.ManualTaxRate && inputs.TaxProfile != nil {
		inputs.MarginalTaxRate = calculation.EstimateMarginalTaxRate(*inputs.TaxProfile)
	}

	if inputs.ColdRentPerSqm.IsZero() && inputs.Area.IsPositive() {
		inputs.ColdRentPerSqm = inputs.ColdRent.Div(inputs.Area).Round(2)
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	// Validate scenarios
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	return ValidateInputs(&scenario.Inputs)
}

// ValidateInputs checks the non-negativity and range guards of a single set of inputs.
// Every returned error wraps ErrInvalidInputs and names the offending field.
func ValidateInputs(inputs *domain.PropertyInputs) error {
	if !inputs.PurchasePrice.IsPositive() {
		return invalid("purchase_price must be positive")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"area", inputs.Area},
		{"renovation", inputs.Renovation},
		{"cold_rent", inputs.ColdRent},
		{"warm_rent", inputs.WarmRent},
		{"parking_rent", inputs.ParkingRent},
		{"ancillary_redistributable", inputs.AncillaryRedistributable},
		{"ancillary_non_redistributable", inputs.AncillaryNonRedistributable},
		{"management_fee", inputs.ManagementFee},
		{"additional_expenses", inputs.AdditionalExpenses},
		{"loan.amount", inputs.Loan.Amount},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return invalid("%s cannot be negative", a.field)
		}
	}

	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"transfer_tax_rate", inputs.TransferTaxRate},
		{"notary_rate", inputs.NotaryRate},
		{"court_rate", inputs.CourtRate},
		{"broker_rate", inputs.BrokerRate},
		{"loan.interest_rate", inputs.Loan.InterestRate},
		{"loan.repayment_rate", inputs.Loan.RepaymentRate},
		{"depreciation_rate", inputs.DepreciationRate},
		{"special_depreciation_rate", inputs.SpecialDepreciationRate},
		{"marginal_tax_rate", inputs.MarginalTaxRate},
		{"rent_growth_rate", inputs.RentGrowthRate},
		{"property_growth_rate", inputs.PropertyGrowthRate},
	}
	for _, r := range rates {
		if err := validatePercentage(r.field, r.value); err != nil {
			return err
		}
	}

	if err := validateTerm("loan.term_years", inputs.Loan.TermYears); err != nil {
		return err
	}
	if inputs.SpecialDepreciationYears < 0 {
		return invalid("special_depreciation_years cannot be negative")
	}
	if !inputs.ManualTaxSettings && inputs.DepreciationType != "" {
		if _, ok := domain.LookupDepreciationPreset(inputs.DepreciationType); !ok {
			return invalid("unknown depreciation_type %q", inputs.DepreciationType)
		}
	}

	if inputs.SubsidizedLoan.Enabled {
		kfw := inputs.SubsidizedLoan
		if kfw.Amount.IsNegative() {
			return invalid("subsidized_loan.amount cannot be negative")
		}
		if err := validatePercentage("subsidized_loan.interest_rate", kfw.InterestRate); err != nil {
			return err
		}
		if err := validatePercentage("subsidized_loan.repayment_rate", kfw.RepaymentRate); err != nil {
			return err
		}
		if err := validateTerm("subsidized_loan.term_years", kfw.TermYears); err != nil {
			return err
		}
	}

	if inputs.TaxProfile != nil {
		return ValidateTaxProfile(inputs.TaxProfile)
	}

	return nil
}

// ValidateTaxProfile checks the inputs of the marginal tax rate estimate
func ValidateTaxProfile(tp *domain.TaxProfile) error {
	if tp.AnnualIncome.IsNegative() {
		return invalid("tax_profile.annual_income cannot be negative")
	}
	if tp.Children < 0 {
		return invalid("tax_profile.children cannot be negative")
	}
	switch tp.MaritalStatus {
	case "", "single", "married":
	default:
		return invalid("tax_profile.marital_status must be single or married, got %q", tp.MaritalStatus)
	}
	return nil
}

func validatePercentage(field string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return invalid("%s must be between 0 and 100", field)
	}
	return nil
}

func validateTerm(field string, years int) error {
	if years < 1 || years > maxLoanTermYears {
		return invalid("%s must be between 1 and %d", field, maxLoanTermYears)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInputs, fmt.Sprintf(format, args...))
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := domain.PropertyInputs{
		PurchasePrice:               decimal.NewFromInt(300000),
		Area:                        decimal.NewFromInt(80),
		Region:                      "Berlin",
		EnergyEfficiency:            "C",
		TransferTaxRate:             decimal.NewFromFloat(6.0),
		NotaryRate:                  decimal.NewFromFloat(1.5),
		CourtRate:                   decimal.NewFromFloat(0.5),
		BrokerRate:                  decimal.NewFromFloat(3.57),
		Renovation:                  decimal.Zero,
		ColdRent:                    decimal.NewFromInt(1200),
		ColdRentPerSqm:              decimal.NewFromFloat(12.0),
		WarmRent:                    decimal.NewFromInt(1400),
		ParkingRent:                 decimal.NewFromInt(50),
		AncillaryRedistributable:    decimal.NewFromInt(150),
		AncillaryNonRedistributable: decimal.NewFromInt(50),
		ManagementFee:               decimal.NewFromInt(50),
		AdditionalExpenses:          decimal.NewFromInt(200),
		Loan: domain.LoanTerms{
			Amount:        decimal.NewFromInt(240000),
			InterestRate:  decimal.NewFromFloat(3.5),
			RepaymentRate: decimal.NewFromFloat(2.0),
			TermYears:     30,
		},
		SubsidizedLoan: domain.SubsidizedLoan{
			Enabled: false,
			LoanTerms: domain.LoanTerms{
				Amount:        decimal.Zero,
				InterestRate:  decimal.NewFromFloat(1.5),
				RepaymentRate: decimal.NewFromFloat(2.0),
				TermYears:     20,
			},
		},
		DepreciationType: "neubau-afa-lin",
		DepreciationRate: decimal.NewFromFloat(2.0),
		MarginalTaxRate:  decimal.NewFromInt(42),
		TaxProfile: &domain.TaxProfile{
			AnnualIncome:  decimal.NewFromInt(80000),
			MaritalStatus: "single",
			SolidarityTax: true,
		},
		RentGrowthRate:     decimal.NewFromFloat(2.0),
		PropertyGrowthRate: decimal.NewFromFloat(2.5),
	}

	kfw := base
	profile := *base.TaxProfile
	kfw.TaxProfile = &profile
	kfw.DepreciationType = "neubau-afa-lin-sonder"
	kfw.Loan.Amount = decimal.NewFromInt(190000)
	kfw.SubsidizedLoan.Enabled = true
	kfw.SubsidizedLoan.Amount = decimal.NewFromInt(50000)

	config := &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Berlin linear depreciation", Inputs: base},
			{Name: "Berlin special depreciation with KfW", Inputs: kfw},
		},
	}
	ip.ApplyDefaults(config)
	return config
}
