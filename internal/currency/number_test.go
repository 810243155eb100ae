package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/adspend/internal/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   models.Value
		want float64
	}{
		{"null", models.Null(), 0},
		{"empty", models.String(""), 0},
		{"blank", models.String("   "), 0},
		{"letters", models.String("abc"), 0},
		{"number", models.Number(42.5), 42.5},
		{"integer string", models.String("1000"), 1000},
		{"comma decimal with space grouping", models.String("1 234,56"), 1234.56},
		{"currency suffix", models.String("15 000 FCFA"), 15000},
		{"currency prefix", models.String("$12.40"), 12.4},
		{"negative", models.String("-3,5"), -3.5},
		{"leading dot", models.String(".5"), 0.5},
		{"trailing dot", models.String("7."), 7},
		{"double separator keeps prefix", models.String("1,234.56"), 1.234},
		{"lonely minus", models.String("-"), 0},
		{"nan", models.Number(math.NaN()), 0},
		{"inf", models.Number(math.Inf(1)), 0},
		{"bool text", models.String("true"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.in), 1e-9)
		})
	}
}
