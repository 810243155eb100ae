package metrics

import (
	"math"

	"github.com/AngelCh415/adspend/internal/models"
)

// Global holds the dataset-wide KPIs. Every ratio is 0 when its
// denominator is 0.
type Global struct {
	models.Totals
	RevenueTotal   float64
	RevenuePerUnit float64
	CPA            float64
	ROAS           float64
	Profit         float64
	BreakEvenCPA   float64
	CTR            float64 // percent
	CPC            float64
	ConversionRate float64 // percent
	PlannedBudget  float64
	Pacing         float64 // spend / planned budget
}

func Compute(t models.Totals, bc models.BusinessContext) Global {
	g := Global{Totals: t, RevenueTotal: bc.RevenueTotal}

	// Without conversions the product price stands in for revenue per sale.
	g.RevenuePerUnit = bc.ProductPrice
	if t.Results > 0 {
		g.RevenuePerUnit = bc.RevenueTotal / t.Results
	}
	g.BreakEvenCPA = g.RevenuePerUnit
	g.CPA = safeDivF(t.Spend, t.Results)
	g.ROAS = safeDivF(bc.RevenueTotal, t.Spend)
	g.Profit = bc.RevenueTotal - t.Spend

	g.CTR = safeDivF(t.Clicks, t.Impressions) * 100
	g.CPC = safeDivF(t.Spend, t.Clicks)
	g.ConversionRate = safeDivF(t.Results, t.Clicks) * 100

	g.PlannedBudget = bc.PlannedBudget()
	g.Pacing = safeDivF(t.Spend, g.PlannedBudget)

	for _, f := range []*float64{
		&g.RevenuePerUnit, &g.CPA, &g.ROAS, &g.Profit, &g.BreakEvenCPA,
		&g.CTR, &g.CPC, &g.ConversionRate, &g.PlannedBudget, &g.Pacing,
	} {
		*f = bounded(*f)
	}
	return g
}

// Allocate splits revenueTotal across buckets by their share of
// conversions, or by their share of spend when the dataset has no
// conversions, then derives each bucket's CPA and ROAS.
func Allocate(buckets []*models.Bucket, t models.Totals, revenueTotal float64) {
	for _, b := range buckets {
		if t.Results > 0 {
			b.Revenue = b.Results / t.Results * revenueTotal
		} else {
			b.Revenue = safeDivF(b.Spend, t.Spend) * revenueTotal
		}
		b.Revenue = bounded(b.Revenue)
		b.CPA = bounded(safeDivF(b.Spend, b.Results))
		b.ROAS = bounded(safeDivF(b.Revenue, b.Spend))
	}
}

func safeDivF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Round2 rounds half away from zero to two decimals.
func Round2(f float64) float64 { return roundN(f, 100) }

func Round3(f float64) float64 { return roundN(f, 1000) }

// roundN leaves f untouched when f*scale is not representable; such
// magnitudes carry no fractional digits anyway.
func roundN(f, scale float64) float64 {
	r := math.Round(f*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return f
	}
	return r
}

// bounded keeps a KPI representable in JSON: NaN becomes 0 and infinities
// saturate at the largest float64.
func bounded(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}
