package currency

import (
	"strings"

	"github.com/AngelCh415/adspend/internal/fields"
	"github.com/AngelCh415/adspend/internal/models"
)

// DefaultBase is the reporting currency when none is configured.
const DefaultBase = "FCFA"

// DefaultRates converts one unit of each code into FCFA. The table is
// static configuration, not a market feed.
var DefaultRates = map[string]float64{
	"FCFA": 1,
	"XOF":  1,
	"XAF":  1,
	"CFA":  1,
	"USD":  600,
	"EUR":  655.957,
	"GBP":  760,
	"CAD":  440,
	"NGN":  0.4,
	"GHS":  40,
	"MAD":  60,
}

// Table holds the conversion rates into the base currency.
type Table struct {
	base  string
	rates map[string]float64
}

// NewTable upper-cases codes, drops non-positive rates and pins the base
// currency to 1.
func NewTable(base string, rates map[string]float64) *Table {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = DefaultBase
	}
	t := &Table{base: base, rates: make(map[string]float64, len(rates)+1)}
	for code, r := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || r <= 0 {
			continue
		}
		t.rates[code] = r
	}
	t.rates[base] = 1
	return t
}

func DefaultTable() *Table { return NewTable(DefaultBase, DefaultRates) }

func (t *Table) Base() string { return t.base }

func (t *Table) Known(code string) bool {
	_, ok := t.rates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Rate returns the multiplier for code; unknown codes count as base.
func (t *Table) Rate(code string) float64 {
	if r, ok := t.rates[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return r
	}
	return 1
}

// Normalizer detects row currencies and converts amounts to the base.
type Normalizer struct {
	table    *Table
	resolver *fields.Resolver
}

func NewNormalizer(t *Table, r *fields.Resolver) *Normalizer {
	if t == nil {
		t = DefaultTable()
	}
	if r == nil {
		r = fields.DefaultResolver()
	}
	return &Normalizer{table: t, resolver: r}
}

func (n *Normalizer) Table() *Table { return n.table }

// Detect returns the currency of a row: the currency column when it holds
// a known code, else a known code embedded in a column name such as
// "amount_usd", else the base currency.
func (n *Normalizer) Detect(row models.RawRow, idx *fields.Index) string {
	if v, ok := n.resolver.Value(row, idx, fields.Currency); ok {
		if s, ok := v.Text(); ok && n.table.Known(s) {
			return strings.ToUpper(s)
		}
	}
	if idx != nil {
		for _, tok := range idx.Tokens() {
			for _, part := range fields.Parts(tok) {
				if code := strings.ToUpper(part); n.table.Known(code) {
					return code
				}
			}
		}
	}
	return n.table.base
}

// ToBase parses v and converts it from code into the base currency.
func (n *Normalizer) ToBase(v models.Value, code string) float64 {
	return finite(ParseNumber(v) * n.table.Rate(code))
}
