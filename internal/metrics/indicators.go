package metrics

import (
	"fmt"

	"github.com/AngelCh415/adspend/internal/models"
)

// Band is one row of a threshold table: values up to Max (strictly below
// when Open) read as Label. The last band of a table has no bound.
type Band struct {
	Max   float64
	Open  bool
	Label string
	Last  bool
}

func below(max float64, label string) Band { return Band{Max: max, Open: true, Label: label} }
func upTo(max float64, label string) Band  { return Band{Max: max, Label: label} }
func otherwise(label string) Band          { return Band{Label: label, Last: true} }

var (
	CTRBands        = []Band{below(1, "weak"), below(2, "average"), otherwise("solid")}
	CPCBands        = []Band{upTo(100, "cheap"), upTo(300, "acceptable"), otherwise("expensive")}
	ConversionBands = []Band{below(1, "weak"), below(3, "average"), otherwise("solid")}
	ROASBands       = []Band{below(1, "loss-making"), below(2, "fragile"), below(3, "profitable"), otherwise("excellent")}
)

// Interpret walks bands top-down and returns the first matching label.
func Interpret(bands []Band, v float64) string {
	for _, b := range bands {
		switch {
		case b.Last:
			return b.Label
		case b.Open && v < b.Max:
			return b.Label
		case !b.Open && v <= b.Max:
			return b.Label
		}
	}
	return ""
}

const (
	KeyCTR        = "ctr"
	KeyCPC        = "cpc"
	KeyConversion = "conversion"
	KeyROAS       = "roas"
)

// Indicators renders the four headline KPIs; money is shown in base.
func Indicators(g Global, base string) []models.Indicator {
	return []models.Indicator{
		{
			Key: KeyCTR, Label: "Click-through rate",
			Value: Round2(g.CTR), FormattedValue: fmt.Sprintf("%.2f%%", g.CTR),
			Interpretation: Interpret(CTRBands, g.CTR),
		},
		{
			Key: KeyCPC, Label: "Cost per click",
			Value: Round2(g.CPC), FormattedValue: Money(g.CPC, base),
			Interpretation: Interpret(CPCBands, g.CPC),
		},
		{
			Key: KeyConversion, Label: "Conversion rate",
			Value: Round2(g.ConversionRate), FormattedValue: fmt.Sprintf("%.2f%%", g.ConversionRate),
			Interpretation: Interpret(ConversionBands, g.ConversionRate),
		},
		{
			Key: KeyROAS, Label: "Return on ad spend",
			Value: Round2(g.ROAS), FormattedValue: fmt.Sprintf("%.2fx", g.ROAS),
			Interpretation: Interpret(ROASBands, g.ROAS),
		},
	}
}

// Money formats an amount in the base currency without decimals.
func Money(v float64, base string) string { return fmt.Sprintf("%.0f %s", v, base) }
