// Package crosssell scans the customer portfolio for product-upgrade
// opportunities and orders them by priority and timing.
package crosssell

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/segmentation"
)

// Optimizer produces cross-sell plans.
type Optimizer struct {
	tables benchmarks.Tables
	seg    *segmentation.Model
}

// New creates an optimizer over the given benchmark tables.
func New(tables benchmarks.Tables) *Optimizer {
	return &Optimizer{tables: tables, seg: segmentation.New(tables)}
}

// tenure fit peaks this many days after the relevant prior purchase when a
// product does not define its own optimal window.
const defaultOptimalTenureDays = 60

// fit decays this many score points per day away from the optimal window.
var tenureDecayPerDay = decimal.NewFromFloat(0.25)

var triggerProducts = map[string][]domain.ProductType{
	"new_home":         {domain.ProductHome, domain.ProductUmbrella},
	"new_car":          {domain.ProductAuto},
	"new_driver":       {domain.ProductAuto},
	"married":          {domain.ProductLife},
	"new_baby":         {domain.ProductLife},
	"business_started": {domain.ProductBusiness},
	"moved_rental":     {domain.ProductRenters},
}

// Plan scores every not-yet-owned product for every customer and returns the
// opportunity list sorted by priority (ties broken by larger LTV delta),
// along with the aggregates the simulation feeds into the following month.
// month is the 1-based simulation month, used for seasonal fit.
func (o *Optimizer) Plan(customers []domain.Customer, month int) *domain.CrossSellPlan {
	plan := &domain.CrossSellPlan{}

	for _, c := range customers {
		for _, pt := range domain.AllProductTypes() {
			if c.Owns(pt) {
				continue
			}
			product, ok := o.tables.Product(pt)
			if !ok {
				continue
			}
			if c.DaysSinceLatestPurchase() < product.MinTenureDays {
				// Below the product's minimum tenure: no opportunity at all.
				continue
			}
			opp := o.score(c, product, month)
			plan.Opportunities = append(plan.Opportunities, opp)
		}
	}

	sort.SliceStable(plan.Opportunities, func(i, j int) bool {
		a, b := plan.Opportunities[i], plan.Opportunities[j]
		if !a.Priority.Equal(b.Priority) {
			return a.Priority.GreaterThan(b.Priority)
		}
		return a.LTVDelta.GreaterThan(b.LTVDelta)
	})

	for _, opp := range plan.Opportunities {
		if opp.TimingDays == 0 {
			plan.ExpectedMonthlyPolicies = plan.ExpectedMonthlyPolicies.Add(opp.ExpectedConversion)
			plan.ExpectedLTVGain = plan.ExpectedLTVGain.Add(opp.ExpectedConversion.Mul(opp.LTVDelta))
		}
	}
	return plan
}

func (o *Optimizer) score(c domain.Customer, product domain.Product, month int) domain.CrossSellOpportunity {
	tenure := o.tenureFit(c, product)
	seasonal := o.seasonalFit(product, month)
	trigger := o.triggerFit(c, product.Type)
	sequence := sequenceScore(c, product.Type)

	priority := tenure.Mul(decimal.NewFromFloat(0.35)).
		Add(seasonal.Mul(decimal.NewFromFloat(0.20))).
		Add(trigger.Mul(decimal.NewFromFloat(0.20))).
		Add(sequence.Mul(decimal.NewFromFloat(0.25)))

	timing := 0
	optimal := product.OptimalTenure
	if optimal == 0 {
		optimal = defaultOptimalTenureDays
	}
	if days := c.DaysSinceLatestPurchase(); days < optimal {
		timing = optimal - days
	}

	return domain.CrossSellOpportunity{
		CustomerID:         c.ID,
		CurrentProducts:    append([]domain.ProductType(nil), c.Products...),
		RecommendedProduct: product.Type,
		Priority:           priority,
		TimingDays:         timing,
		ExpectedConversion: expectedConversion(priority),
		LTVDelta:           o.ltvDelta(c, product),
	}
}

// tenureFit peaks at the product's optimal tenure after the most recent
// relevant purchase (not account opening) and decays linearly either side.
func (o *Optimizer) tenureFit(c domain.Customer, product domain.Product) decimal.Decimal {
	optimal := product.OptimalTenure
	if optimal == 0 {
		optimal = defaultOptimalTenureDays
	}
	distance := c.DaysSinceLatestPurchase() - optimal
	if distance < 0 {
		distance = -distance
	}
	fit := decimal.NewFromInt(100).Sub(decimal.NewFromInt(int64(distance)).Mul(tenureDecayPerDay))
	if fit.IsNegative() {
		return decimal.Zero
	}
	return fit
}

func (o *Optimizer) seasonalFit(product domain.Product, month int) decimal.Decimal {
	calendar := ((month - 1) % 12) + 1
	for _, pm := range product.PreferredMonths {
		if pm == calendar {
			return decimal.NewFromInt(100)
		}
	}
	return decimal.NewFromInt(50)
}

func (o *Optimizer) triggerFit(c domain.Customer, pt domain.ProductType) decimal.Decimal {
	for _, event := range c.TriggerEvents {
		for _, target := range triggerProducts[event] {
			if target == pt {
				return decimal.NewFromInt(100)
			}
		}
	}
	return decimal.Zero
}

// sequenceScore encodes natural product progressions. Auto+home into umbrella
// is the strongest sequence there is; cross-category jumps score lowest.
func sequenceScore(c domain.Customer, pt domain.ProductType) decimal.Decimal {
	ownsAuto := c.Owns(domain.ProductAuto)
	ownsHome := c.Owns(domain.ProductHome)

	switch pt {
	case domain.ProductUmbrella:
		if ownsAuto && ownsHome {
			return decimal.NewFromInt(100)
		}
		if ownsHome {
			return decimal.NewFromInt(70)
		}
		return decimal.NewFromInt(45)
	case domain.ProductHome:
		if ownsAuto {
			return decimal.NewFromInt(80)
		}
		return decimal.NewFromInt(55)
	case domain.ProductAuto:
		if ownsHome {
			return decimal.NewFromInt(75)
		}
		return decimal.NewFromInt(55)
	case domain.ProductLife:
		// Cross-category jump.
		return decimal.NewFromInt(40)
	default:
		return decimal.NewFromInt(50)
	}
}

func expectedConversion(priority decimal.Decimal) decimal.Decimal {
	switch {
	case priority.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return decimal.NewFromFloat(0.35)
	case priority.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return decimal.NewFromFloat(0.25)
	case priority.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return decimal.NewFromFloat(0.15)
	default:
		return decimal.NewFromFloat(0.08)
	}
}

// ltvDelta values the upgrade as the customer's LTV with the product added
// minus without it. Both sides use the tier retention the classification
// implies, so a tier upgrade moves retention and LTV together.
func (o *Optimizer) ltvDelta(c domain.Customer, product domain.Product) decimal.Decimal {
	blended := decimal.NewFromFloat(0.13)

	currentTier := o.seg.Classify(len(c.Products), c.AnnualPremium)
	current := o.seg.LTV(segmentation.LTVInput{
		AnnualCommission: c.AnnualPremium.Mul(blended),
		ServicingCost:    servicingFor(c.Products, o.tables),
		AnnualRetention:  o.tables.TierRetention[currentTier],
	})

	newPremium := c.AnnualPremium.Add(product.AveragePremium)
	newTier := o.seg.Classify(len(c.Products)+1, newPremium)
	upgraded := o.seg.LTV(segmentation.LTVInput{
		AnnualCommission: newPremium.Mul(blended),
		ServicingCost:    servicingFor(append(append([]domain.ProductType{}, c.Products...), product.Type), o.tables),
		AnnualRetention:  o.tables.TierRetention[newTier],
	})

	return upgraded.Sub(current)
}

func servicingFor(products []domain.ProductType, tables benchmarks.Tables) decimal.Decimal {
	total := decimal.Zero
	for _, pt := range products {
		if p, ok := tables.Product(pt); ok {
			total = total.Add(p.ServicingCost)
		}
	}
	return total
}
