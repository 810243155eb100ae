package ingest

import (
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/AngelCh415/adspend/internal/currency"
	"github.com/AngelCh415/adspend/internal/fields"
	"github.com/AngelCh415/adspend/internal/models"
)

const (
	UnnamedCampaign = "Campagne sans nom"
	UnnamedAdSet    = "Ensemble sans nom"
)

var ErrNoExploitableRows = eris.New("no exploitable rows: spend, clicks, results and impressions are all zero")

// Result is the normalized view of one export batch.
type Result struct {
	Rows       []models.NormalizedRow
	Received   int
	Dropped    int
	Currencies map[string]int
}

type Normalizer struct {
	resolver *fields.Resolver
	money    *currency.Normalizer
	log      *slog.Logger
}

func NewNormalizer(r *fields.Resolver, money *currency.Normalizer, log *slog.Logger) *Normalizer {
	if r == nil {
		r = fields.DefaultResolver()
	}
	if money == nil {
		money = currency.NewNormalizer(nil, r)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{resolver: r, money: money, log: log}
}

// Run normalizes rows in input order and drops the ones carrying no
// signal. It fails with ErrNoExploitableRows when nothing is left.
func (n *Normalizer) Run(rows []models.RawRow) (Result, error) {
	res := Result{
		Rows:       make([]models.NormalizedRow, 0, len(rows)),
		Received:   len(rows),
		Currencies: map[string]int{},
	}
	cache := fields.NewIndexCache()
	for _, raw := range rows {
		nr := n.Row(raw, cache.For(raw))
		if !nr.HasSignal() {
			res.Dropped++
			continue
		}
		res.Currencies[nr.Currency]++
		res.Rows = append(res.Rows, nr)
	}

	n.log.Debug("rows normalized",
		slog.Int("received", res.Received),
		slog.Int("kept", len(res.Rows)),
		slog.Int("dropped", res.Dropped),
		slog.Int("layouts", cache.Len()))

	if len(res.Rows) == 0 {
		return res, ErrNoExploitableRows
	}
	return res, nil
}

// Row normalizes a single export row against its column index.
func (n *Normalizer) Row(raw models.RawRow, idx *fields.Index) models.NormalizedRow {
	campaign, hasCampaign := n.text(raw, idx, fields.Campaign)
	adSet, hasAdSet := n.text(raw, idx, fields.AdSet)

	code := n.money.Detect(raw, idx)
	spend, _ := n.resolver.Value(raw, idx, fields.Spend)
	clicks, _ := n.resolver.Value(raw, idx, fields.Clicks)
	results, _ := n.resolver.Value(raw, idx, fields.Results)
	impressions, _ := n.resolver.Value(raw, idx, fields.Impressions)

	return models.NormalizedRow{
		Campaign:    pick(campaign, hasCampaign, adSet, hasAdSet, UnnamedCampaign),
		AdSet:       pick(adSet, hasAdSet, campaign, hasCampaign, UnnamedAdSet),
		Spend:       maxf(n.money.ToBase(spend, code)),
		Clicks:      maxf(currency.ParseNumber(clicks)),
		Results:     maxf(currency.ParseNumber(results)),
		Impressions: maxf(currency.ParseNumber(impressions)),
		Country:     n.optional(raw, idx, fields.Country),
		Date:        n.optional(raw, idx, fields.Date),
		Currency:    code,
	}
}

func (n *Normalizer) text(raw models.RawRow, idx *fields.Index, f fields.Name) (string, bool) {
	v, ok := n.resolver.Value(raw, idx, f)
	if !ok {
		return "", false
	}
	return v.Text()
}

func (n *Normalizer) optional(raw models.RawRow, idx *fields.Index, f fields.Name) *string {
	s, ok := n.text(raw, idx, f)
	if !ok {
		return nil
	}
	return &s
}

func pick(primary string, hasPrimary bool, fallback string, hasFallback bool, def string) string {
	if hasPrimary {
		return primary
	}
	if hasFallback {
		return fallback
	}
	return def
}

func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
