package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTransferTaxRate applies when a region is unknown
var DefaultTransferTaxRate = decimal.NewFromFloat(5.0)

// transferTaxRates maps German federal states to their Grunderwerbsteuer in percent
var transferTaxRates = map[string]decimal.Decimal{
	"Baden-Württemberg":      decimal.NewFromFloat(5.0),
	"Bayern":                 decimal.NewFromFloat(3.5),
	"Berlin":                 decimal.NewFromFloat(6.0),
	"Brandenburg":            decimal.NewFromFloat(6.5),
	"Bremen":                 decimal.NewFromFloat(5.0),
	"Hamburg":                decimal.NewFromFloat(4.5),
	"Hessen":                 decimal.NewFromFloat(6.0),
	"Mecklenburg-Vorpommern": decimal.NewFromFloat(6.0),
	"Niedersachsen":          decimal.NewFromFloat(5.0),
	"Nordrhein-Westfalen":    decimal.NewFromFloat(6.5),
	"Rheinland-Pfalz":        decimal.NewFromFloat(5.0),
	"Saarland":               decimal.NewFromFloat(6.5),
	"Sachsen":                decimal.NewFromFloat(3.5),
	"Sachsen-Anhalt":         decimal.NewFromFloat(5.0),
	"Schleswig-Holstein":     decimal.NewFromFloat(6.5),
	"Thüringen":              decimal.NewFromFloat(6.5),
}

// RegionTransferTax pairs a federal state with its transfer tax rate
type RegionTransferTax struct {
	Region string          `json:"region"`
	Rate   decimal.Decimal `json:"rate"`
}

// TransferTaxRate returns the transfer tax for a region, falling back to DefaultTransferTaxRate.
func TransferTaxRate(region string) decimal.Decimal {
	if rate, ok := transferTaxRates[region]; ok {
		return rate
	}
	return DefaultTransferTaxRate
}

// Regions lists all known federal states sorted by name
func Regions() []RegionTransferTax {
	regions := make([]RegionTransferTax, 0, len(transferTaxRates))
	for name, rate := range transferTaxRates {
		regions = append(regions, RegionTransferTax{Region: name, Rate: rate})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Region < regions[j].Region })
	return regions
}

// DepreciationPreset is a named AfA configuration
type DepreciationPreset struct {
	Key          string          `json:"key"`
	Rate         decimal.Decimal `json:"depreciation_rate"`
	SpecialRate  decimal.Decimal `json:"special_depreciation_rate"`
	SpecialYears int             `json:"special_depreciation_years"`
	Description  string          `json:"description"`
}

var depreciationPresets = []DepreciationPreset{
	{Key: "neubau-afa-degr", Rate: decimal.NewFromFloat(4.0), Description: "New build, declining balance (4% first 8 years, then 2.5%)"},
	{Key: "neubau-afa-lin", Rate: decimal.NewFromFloat(2.0), Description: "New build, linear (2% for 50 years)"},
	{Key: "neubau-afa-degr-sonder", Rate: decimal.NewFromFloat(4.0), SpecialRate: decimal.NewFromFloat(5.0), SpecialYears: 4, Description: "New build, declining balance + special (4% + 5% first 4 years)"},
	{Key: "neubau-afa-lin-sonder", Rate: decimal.NewFromFloat(2.0), SpecialRate: decimal.NewFromFloat(5.0), SpecialYears: 4, Description: "New build, linear + special (2% + 5% first 4 years)"},
	{Key: "bestand-linear", Rate: decimal.NewFromFloat(2.0), Description: "Existing building, linear (2%)"},
	{Key: "denkmal", Rate: decimal.NewFromFloat(2.5), SpecialRate: decimal.NewFromFloat(9.0), SpecialYears: 8, Description: "Listed building (2.5% + 9% for 8 years)"},
	{Key: "denkmal-sanierung", Rate: decimal.NewFromFloat(2.5), SpecialRate: decimal.NewFromFloat(10.0), SpecialYears: 10, Description: "Listed building renovation (2.5% + 10% for 10 years)"},
}

// DepreciationPresets returns a copy of all presets in display order
func DepreciationPresets() []DepreciationPreset {
	out := make([]DepreciationPreset, len(depreciationPresets))
	copy(out, depreciationPresets)
	return out
}

// LookupDepreciationPreset finds a preset by key
func LookupDepreciationPreset(key string) (DepreciationPreset, bool) {
	for _, p := range depreciationPresets {
		if p.Key == key {
			return p, true
		}
	}
	return DepreciationPreset{}, false
}
