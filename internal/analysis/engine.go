// Package analysis runs the full pipeline for one export: row
// normalization, aggregation, KPIs, decisions and the optional narrative.
package analysis

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/AngelCh415/adspend/internal/currency"
	"github.com/AngelCh415/adspend/internal/decision"
	"github.com/AngelCh415/adspend/internal/fields"
	"github.com/AngelCh415/adspend/internal/ingest"
	"github.com/AngelCh415/adspend/internal/metrics"
	"github.com/AngelCh415/adspend/internal/models"
	"github.com/AngelCh415/adspend/internal/narrative"
	"github.com/AngelCh415/adspend/internal/store"
	"github.com/AngelCh415/adspend/internal/telemetry"
)

const defaultNarratorTimeout = 8 * time.Second

// Engine is safe for concurrent use: every call builds its own
// request-scoped state.
type Engine struct {
	resolver        *fields.Resolver
	rates           *currency.Table
	money           *currency.Normalizer
	rows            *ingest.Normalizer
	narrator        narrative.Narrator
	narratorTimeout time.Duration
	log             *slog.Logger
}

type Option func(*Engine)

func WithResolver(r *fields.Resolver) Option { return func(e *Engine) { e.resolver = r } }
func WithRates(t *currency.Table) Option     { return func(e *Engine) { e.rates = t } }
func WithLogger(l *slog.Logger) Option       { return func(e *Engine) { e.log = l } }

// WithNarrator enables the narrative step. A non-positive timeout falls
// back to the default.
func WithNarrator(n narrative.Narrator, timeout time.Duration) Option {
	return func(e *Engine) {
		e.narrator = n
		e.narratorTimeout = timeout
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.resolver == nil {
		e.resolver = fields.DefaultResolver()
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.money = currency.NewNormalizer(e.rates, e.resolver)
	e.rows = ingest.NewNormalizer(e.resolver, e.money, e.log)
	if e.narratorTimeout <= 0 {
		e.narratorTimeout = defaultNarratorTimeout
	}
	return e
}

func (e *Engine) BaseCurrency() string { return e.money.Table().Base() }

// Analyze computes the report for req. Errors matching IsInputError are
// the caller's fault; anything else is internal.
func (e *Engine) Analyze(ctx context.Context, req Request) (*models.Report, error) {
	report, err := e.analyze(req)
	switch {
	case err == nil:
		telemetry.Analyses.WithLabelValues("ok").Inc()
	case IsInputError(err):
		telemetry.Analyses.WithLabelValues("invalid").Inc()
		return nil, err
	default:
		telemetry.Analyses.WithLabelValues("error").Inc()
		return nil, err
	}

	report.AINarrative = e.narrate(ctx, report)
	return report, nil
}

func (e *Engine) analyze(req Request) (*models.Report, error) {
	if len(req.Rows) == 0 {
		return nil, ErrNoData
	}
	if err := ValidateContext(req.Context); err != nil {
		return nil, err
	}

	res, err := e.rows.Run(req.Rows)
	telemetry.Rows.WithLabelValues("received").Add(float64(res.Received))
	telemetry.Rows.WithLabelValues("dropped").Add(float64(res.Dropped))
	if err != nil {
		return nil, err
	}
	telemetry.Rows.WithLabelValues("kept").Add(float64(len(res.Rows)))

	st := store.Aggregate(res.Rows)
	totals := st.Totals()
	g := metrics.Compute(totals, req.Context)

	campaigns := st.Campaigns()
	adSets := st.AdSets()
	metrics.Allocate(campaigns, totals, req.Context.RevenueTotal)
	metrics.Allocate(adSets, totals, req.Context.RevenueTotal)
	decision.ClassifyBuckets(campaigns, g.BreakEvenCPA)
	decision.ClassifyBuckets(adSets, g.BreakEvenCPA)
	sortBySpend(campaigns)
	sortBySpend(adSets)

	base := e.BaseCurrency()
	verdict := decision.VerdictOf(g.Profit, g.ROAS)
	dec := decision.Classify(g.ROAS, g.CPA, g.BreakEvenCPA)

	sample := req.Rows[0]
	report := &models.Report{
		Success: true,
		Summary: models.Summary{
			Verdict:    verdict,
			ProfitFCFA: metrics.Round2(g.Profit),
			Decision:   dec,
			Reason:     decision.Reason(verdict, dec, g, base),
		},
		Campaigns:   views(campaigns, false),
		Indicators:  metrics.Indicators(g, base),
		Conclusions: decision.Conclude(g, campaigns, base),
		ActionPlan:  decision.Plan(verdict, g, campaigns, base),
		Stats: models.Stats{
			SpendFCFA:   metrics.Round2(totals.Spend),
			Clicks:      totals.Clicks,
			Results:     totals.Results,
			Impressions: totals.Impressions,
			CPAFCFA:     metrics.Round2(g.CPA),
			ROAS:        metrics.Round2(g.ROAS),
		},
		Metadata: models.Metadata{
			RowCount:       len(res.Rows),
			RawRowCount:    res.Received,
			DroppedRows:    res.Dropped,
			Columns:        sample.Keys(),
			FieldMap:       e.resolver.FieldMap(sample),
			CampaignsCount: len(campaigns),
			AdSetsCount:    len(adSets),
			Countries:      st.Countries(),
			BaseCurrency:   base,
			Currencies:     res.Currencies,
			DateRange:      st.DateRange(),
		},
		AdSets: views(adSets, true),
	}
	return report, nil
}

// narrate runs after the payload is complete. Any failure leaves the
// narrative empty.
func (e *Engine) narrate(ctx context.Context, r *models.Report) *string {
	if e.narrator == nil {
		telemetry.Narratives.WithLabelValues("disabled").Inc()
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.narratorTimeout)
	defer cancel()

	text, err := e.narrator.Generate(ctx, narrative.FromReport(r))
	if err != nil {
		outcome := "error"
		switch {
		case eris.Is(err, narrative.ErrRateLimited):
			outcome = "limited"
		case ctx.Err() != nil:
			outcome = "timeout"
		}
		telemetry.Narratives.WithLabelValues(outcome).Inc()
		e.log.Warn("narrative skipped", slog.String("outcome", outcome), slog.String("err", err.Error()))
		return nil
	}
	telemetry.Narratives.WithLabelValues("ok").Inc()
	return &text
}

// sortBySpend orders buckets by spend, highest first. Ties keep
// first-seen order.
func sortBySpend(b []*models.Bucket) {
	sort.SliceStable(b, func(i, j int) bool { return b[i].Spend > b[j].Spend })
}

func views(buckets []*models.Bucket, withCampaign bool) []models.BucketView {
	out := make([]models.BucketView, 0, len(buckets))
	for _, b := range buckets {
		v := models.BucketView{
			Name:        b.Key,
			SpendFCFA:   metrics.Round2(b.Spend),
			Clicks:      b.Clicks,
			Results:     b.Results,
			Impressions: b.Impressions,
			RevenueFCFA: metrics.Round2(b.Revenue),
			CPAFCFA:     metrics.Round2(b.CPA),
			ROAS:        metrics.Round2(b.ROAS),
			Decision:    b.Decision,
		}
		if withCampaign {
			v.Campaign = b.Campaign
		}
		out = append(out, v)
	}
	return out
}
