// Package config parses simulation input files. The on-disk format is YAML
// with plain numbers; parsing converts everything monetary into decimals and
// validation fails fast on the first structural problem rather than letting a
// bad input produce a plausible-looking run.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/simulation"
)

// Input is a fully parsed and validated simulation input.
type Input struct {
	Scenario domain.ScenarioConfig
	Seed     domain.AgencyState
	Months   int
}

// InputParser loads and validates YAML input documents.
type InputParser struct{}

// NewInputParser creates an input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// rawDocument mirrors the YAML schema. Numbers are parsed as float64 and
// converted to decimals after structural validation.
type rawDocument struct {
	Name   string  `yaml:"name"`
	Stage  string  `yaml:"stage"`
	Months int     `yaml:"months"`
	Seed   rawSeed `yaml:"seed"`

	Channels     []rawChannel          `yaml:"channels"`
	ChannelSpend map[string]float64    `yaml:"channel_spend"`
	Vendors      []rawVendor           `yaml:"vendors"`
	ProductMix   map[string]rawMixLine `yaml:"product_mix"`

	Staffing struct {
		Producers float64 `yaml:"producers"`
		CSRs      float64 `yaml:"csrs"`
	} `yaml:"staffing"`
	Technology struct {
		CRM                 bool `yaml:"crm"`
		MarketingAutomation bool `yaml:"marketing_automation"`
		SelfServicePortal   bool `yaml:"self_service_portal"`
	} `yaml:"technology"`

	RateIncrease            float64  `yaml:"rate_increase"`
	AnnualRetentionOverride *float64 `yaml:"annual_retention_override"`
	OrganicPoliciesPerMonth float64  `yaml:"organic_policies_per_month"`
	PremiumInflation        float64  `yaml:"premium_inflation"`
	MonthlyExpenses         float64  `yaml:"monthly_expenses"`

	Multipliers *struct {
		Conversion float64 `yaml:"conversion"`
		Retention  float64 `yaml:"retention"`
	} `yaml:"multipliers"`

	Customers []rawCustomer `yaml:"customers"`
}

type rawSeed struct {
	Policies       int     `yaml:"policies"`
	Customers      int     `yaml:"customers"`
	AveragePremium float64 `yaml:"average_premium"`
}

type rawChannel struct {
	Name           string  `yaml:"name"`
	CostPerLead    float64 `yaml:"cost_per_lead"`
	ConversionRate float64 `yaml:"conversion_rate"`
}

type rawVendor struct {
	Name           string  `yaml:"name"`
	Spend          float64 `yaml:"spend"`
	Leads          int     `yaml:"leads"`
	ConversionRate float64 `yaml:"conversion_rate"`
	AverageLTV     float64 `yaml:"average_ltv"`
}

type rawMixLine struct {
	Policies       int     `yaml:"policies"`
	AveragePremium float64 `yaml:"average_premium"`
	CommissionRate float64 `yaml:"commission_rate"`
}

type rawCustomer struct {
	ID            string         `yaml:"id"`
	Products      []string       `yaml:"products"`
	AnnualPremium float64        `yaml:"annual_premium"`
	TenureDays    int            `yaml:"tenure_days"`
	LastPurchase  map[string]int `yaml:"last_purchase_days"`
	Engagement    float64        `yaml:"engagement"`
	ClaimsCount   int            `yaml:"claims_count"`
	NPS           float64        `yaml:"nps"`
	YearsRetained float64        `yaml:"years_retained"`
	TriggerEvents []string       `yaml:"trigger_events"`
}

// LoadFromFile reads, parses and validates a YAML input file.
func (p *InputParser) LoadFromFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return p.Parse(data)
}

// Parse parses and validates a YAML input document.
func (p *InputParser) Parse(data []byte) (*Input, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := p.validate(raw); err != nil {
		return nil, err
	}
	return p.convert(raw)
}

func (p *InputParser) validate(raw rawDocument) error {
	if raw.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if raw.Months < 1 || raw.Months > simulation.MaxMonths {
		return fmt.Errorf("months must be between 1 and %d, got %d", simulation.MaxMonths, raw.Months)
	}
	if raw.Stage != "" && !domain.GrowthStage(raw.Stage).IsValid() {
		return fmt.Errorf("unknown growth stage %q", raw.Stage)
	}
	if raw.Seed.Policies < 0 || raw.Seed.Customers < 0 {
		return fmt.Errorf("seed counts cannot be negative")
	}
	if raw.Seed.Customers == 0 && raw.Seed.Policies > 0 {
		return fmt.Errorf("seed has %d policies but no customers", raw.Seed.Policies)
	}
	if raw.Seed.Policies > 0 && raw.Seed.AveragePremium <= 0 {
		return fmt.Errorf("seed average premium must be positive, got %v", raw.Seed.AveragePremium)
	}
	if len(raw.ProductMix) == 0 {
		return fmt.Errorf("product_mix must list at least one product line")
	}
	for name, line := range raw.ProductMix {
		if !domain.ProductType(name).IsValid() {
			return fmt.Errorf("product_mix: unknown product %q", name)
		}
		if line.Policies < 0 {
			return fmt.Errorf("product_mix.%s: negative policy count %d", name, line.Policies)
		}
		if line.AveragePremium <= 0 {
			return fmt.Errorf("product_mix.%s: average premium must be positive", name)
		}
		if line.CommissionRate < 0 || line.CommissionRate > 1 {
			return fmt.Errorf("product_mix.%s: commission rate %v outside [0,1]", name, line.CommissionRate)
		}
	}

	channelNames := make(map[string]bool, len(raw.Channels))
	for _, ch := range raw.Channels {
		if ch.Name == "" {
			return fmt.Errorf("channels: every channel needs a name")
		}
		if channelNames[ch.Name] {
			return fmt.Errorf("channels: duplicate channel %q", ch.Name)
		}
		channelNames[ch.Name] = true
		if ch.CostPerLead < 0 {
			return fmt.Errorf("channel %q: negative cost per lead", ch.Name)
		}
		if ch.ConversionRate < 0 || ch.ConversionRate > 1 {
			return fmt.Errorf("channel %q: conversion rate %v outside [0,1]", ch.Name, ch.ConversionRate)
		}
	}
	for name, spend := range raw.ChannelSpend {
		if !channelNames[name] {
			return fmt.Errorf("channel_spend references undefined channel %q", name)
		}
		if spend < 0 {
			return fmt.Errorf("channel_spend.%s: negative spend %v", name, spend)
		}
	}

	for _, v := range raw.Vendors {
		if v.Name == "" {
			return fmt.Errorf("vendors: every vendor needs a name")
		}
		if v.Spend < 0 || v.Leads < 0 {
			return fmt.Errorf("vendor %q: spend and leads cannot be negative", v.Name)
		}
		if v.ConversionRate < 0 || v.ConversionRate > 1 {
			return fmt.Errorf("vendor %q: conversion rate %v outside [0,1]", v.Name, v.ConversionRate)
		}
	}

	if o := raw.AnnualRetentionOverride; o != nil && (*o < 0 || *o > 1) {
		return fmt.Errorf("annual_retention_override %v outside [0,1]", *o)
	}
	if raw.OrganicPoliciesPerMonth < 0 {
		return fmt.Errorf("organic_policies_per_month cannot be negative")
	}
	if raw.MonthlyExpenses < 0 {
		return fmt.Errorf("monthly_expenses cannot be negative")
	}
	if m := raw.Multipliers; m != nil {
		if m.Conversion <= 0 || m.Retention <= 0 {
			return fmt.Errorf("multipliers must be positive, got conversion=%v retention=%v", m.Conversion, m.Retention)
		}
	}

	for i, c := range raw.Customers {
		if c.ID == "" {
			return fmt.Errorf("customers[%d]: id is required", i)
		}
		for _, product := range c.Products {
			if !domain.ProductType(product).IsValid() {
				return fmt.Errorf("customer %q: unknown product %q", c.ID, product)
			}
		}
		if c.AnnualPremium < 0 || c.TenureDays < 0 {
			return fmt.Errorf("customer %q: premium and tenure cannot be negative", c.ID)
		}
	}
	return nil
}

func (p *InputParser) convert(raw rawDocument) (*Input, error) {
	scenario := domain.ScenarioConfig{
		Name:                    raw.Name,
		Stage:                   domain.GrowthStage(raw.Stage),
		RateIncrease:            decimal.NewFromFloat(raw.RateIncrease),
		OrganicPoliciesPerMonth: decimal.NewFromFloat(raw.OrganicPoliciesPerMonth),
		PremiumInflation:        decimal.NewFromFloat(raw.PremiumInflation),
		MonthlyExpenses:         decimal.NewFromFloat(raw.MonthlyExpenses),
		Multipliers:             domain.NeutralMultipliers(),
		ChannelSpend:            domain.ChannelSpend{},
		ProductMix:              map[domain.ProductType]domain.ProductMixEntry{},
		Staffing: domain.StaffingPlan{
			Producers: decimal.NewFromFloat(raw.Staffing.Producers),
			CSRs:      decimal.NewFromFloat(raw.Staffing.CSRs),
		},
		Technology: domain.TechnologyFlags{
			CRM:                 raw.Technology.CRM,
			MarketingAutomation: raw.Technology.MarketingAutomation,
			SelfServicePortal:   raw.Technology.SelfServicePortal,
		},
	}
	if raw.Multipliers != nil {
		scenario.Multipliers = domain.ScenarioMultipliers{
			Conversion: decimal.NewFromFloat(raw.Multipliers.Conversion),
			Retention:  decimal.NewFromFloat(raw.Multipliers.Retention),
		}
	}
	if raw.AnnualRetentionOverride != nil {
		v := decimal.NewFromFloat(*raw.AnnualRetentionOverride)
		scenario.AnnualRetentionOverride = &v
	}

	for _, ch := range raw.Channels {
		scenario.Channels = append(scenario.Channels, domain.MarketingChannel{
			Name:           ch.Name,
			CostPerLead:    decimal.NewFromFloat(ch.CostPerLead),
			ConversionRate: decimal.NewFromFloat(ch.ConversionRate),
		})
	}
	for name, spend := range raw.ChannelSpend {
		scenario.ChannelSpend[name] = decimal.NewFromFloat(spend)
	}
	for _, v := range raw.Vendors {
		scenario.Vendors = append(scenario.Vendors, domain.Vendor{
			Name:           v.Name,
			Spend:          decimal.NewFromFloat(v.Spend),
			Leads:          v.Leads,
			ConversionRate: decimal.NewFromFloat(v.ConversionRate),
			AverageLTV:     decimal.NewFromFloat(v.AverageLTV),
		})
	}
	for name, line := range raw.ProductMix {
		scenario.ProductMix[domain.ProductType(name)] = domain.ProductMixEntry{
			Policies:       line.Policies,
			AveragePremium: decimal.NewFromFloat(line.AveragePremium),
			CommissionRate: decimal.NewFromFloat(line.CommissionRate),
		}
	}
	for _, c := range raw.Customers {
		customer := domain.Customer{
			ID:            c.ID,
			AnnualPremium: decimal.NewFromFloat(c.AnnualPremium),
			TenureDays:    c.TenureDays,
			Engagement:    decimal.NewFromFloat(c.Engagement),
			ClaimsCount:   c.ClaimsCount,
			NPS:           decimal.NewFromFloat(c.NPS),
			YearsRetained: decimal.NewFromFloat(c.YearsRetained),
			TriggerEvents: append([]string(nil), c.TriggerEvents...),
		}
		for _, product := range c.Products {
			customer.Products = append(customer.Products, domain.ProductType(product))
		}
		if len(c.LastPurchase) > 0 {
			customer.LastPurchase = make(map[domain.ProductType]int, len(c.LastPurchase))
			for product, days := range c.LastPurchase {
				if !domain.ProductType(product).IsValid() {
					return nil, fmt.Errorf("customer %q: unknown product %q in last_purchase_days", c.ID, product)
				}
				customer.LastPurchase[domain.ProductType(product)] = days
			}
		}
		scenario.Customers = append(scenario.Customers, customer)
	}

	return &Input{
		Scenario: scenario,
		Seed: domain.AgencyState{
			Policies:       raw.Seed.Policies,
			Customers:      raw.Seed.Customers,
			AveragePremium: decimal.NewFromFloat(raw.Seed.AveragePremium),
		},
		Months: raw.Months,
	}, nil
}
