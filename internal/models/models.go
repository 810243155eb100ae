package models

import "math"

// NormalizedRow is one export row after field resolution and currency
// conversion. Spend is expressed in the reporting base currency.
type NormalizedRow struct {
	Campaign    string
	AdSet       string
	Spend       float64
	Clicks      float64
	Results     float64
	Impressions float64
	Country     *string
	Date        *string
	Currency    string
}

// HasSignal reports whether at least one numeric field is non-zero.
func (r NormalizedRow) HasSignal() bool {
	return r.Spend != 0 || r.Clicks != 0 || r.Results != 0 || r.Impressions != 0
}

type BusinessContext struct {
	RevenueTotal float64
	CampaignDays float64
	DailyBudget  float64
	ProductPrice float64
}

// PlannedBudget is the spend the advertiser intended over the whole run.
func (b BusinessContext) PlannedBudget() float64 { return b.CampaignDays * b.DailyBudget }

type Totals struct {
	Spend       float64
	Clicks      float64
	Results     float64
	Impressions float64
}

// Add sums r into t. Sums saturate at the largest float64 so totals stay
// finite.
func (t *Totals) Add(r NormalizedRow) {
	t.Spend = addSat(t.Spend, r.Spend)
	t.Clicks = addSat(t.Clicks, r.Clicks)
	t.Results = addSat(t.Results, r.Results)
	t.Impressions = addSat(t.Impressions, r.Impressions)
}

func addSat(a, b float64) float64 {
	if s := a + b; !math.IsInf(s, 1) {
		return s
	}
	return math.MaxFloat64
}

type Decision string

const (
	DecisionScale    Decision = "SCALE"
	DecisionOptimise Decision = "OPTIMISER"
	DecisionStop     Decision = "STOP"
)

type Verdict string

const (
	VerdictDeficit    Verdict = "deficit"
	VerdictFragile    Verdict = "fragile"
	VerdictProfitable Verdict = "profitable"
)

// Bucket accumulates every row sharing a campaign or ad-set name.
// Campaign and AdSet keep the values of the first row seen for the key.
type Bucket struct {
	Key      string
	Campaign string
	AdSet    string
	Totals
	Rows     int
	Revenue  float64
	CPA      float64
	ROAS     float64
	Decision Decision
}

type Indicator struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	FormattedValue string  `json:"formattedValue"`
	Interpretation string  `json:"interpretation"`
	Value          float64 `json:"value"`
}

type Summary struct {
	Verdict    Verdict  `json:"verdict"`
	ProfitFCFA float64  `json:"profitFCFA"`
	Decision   Decision `json:"decision"`
	Reason     string   `json:"reason"`
}

type BucketView struct {
	Name        string   `json:"name"`
	Campaign    string   `json:"campaign,omitempty"`
	SpendFCFA   float64  `json:"spendFCFA"`
	Clicks      float64  `json:"clicks"`
	Results     float64  `json:"results"`
	Impressions float64  `json:"impressions"`
	RevenueFCFA float64  `json:"revenueFCFA"`
	CPAFCFA     float64  `json:"cpaFCFA"`
	ROAS        float64  `json:"roas"`
	Decision    Decision `json:"decision"`
}

type Conclusions struct {
	WhatWorks []string `json:"whatWorks"`
	Blockers  []string `json:"blockers"`
	Risks     []string `json:"risks"`
}

type Action struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

type Stats struct {
	SpendFCFA   float64 `json:"spendFCFA"`
	Clicks      float64 `json:"clicks"`
	Results     float64 `json:"results"`
	Impressions float64 `json:"impressions"`
	CPAFCFA     float64 `json:"cpaFCFA"`
	ROAS        float64 `json:"roas"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Metadata struct {
	RowCount       int                `json:"rowCount"`
	RawRowCount    int                `json:"rawRowCount"`
	DroppedRows    int                `json:"droppedRows"`
	Columns        []string           `json:"columns"`
	FieldMap       map[string]*string `json:"fieldMap"`
	CampaignsCount int                `json:"campaignsCount"`
	AdSetsCount    int                `json:"adSetsCount"`
	Countries      []string           `json:"countries"`
	BaseCurrency   string             `json:"baseCurrency"`
	Currencies     map[string]int     `json:"currencies"`
	DateRange      *DateRange         `json:"dateRange"`
}

// Report is the success payload of one analysis.
type Report struct {
	Success     bool         `json:"success"`
	Summary     Summary      `json:"summary"`
	Campaigns   []BucketView `json:"campaigns"`
	Indicators  []Indicator  `json:"indicators"`
	Conclusions Conclusions  `json:"conclusions"`
	ActionPlan  []Action     `json:"actionPlan"`
	Stats       Stats        `json:"stats"`
	Metadata    Metadata     `json:"metadata"`
	AdSets      []BucketView `json:"adSets"`
	AINarrative *string      `json:"aiNarrative"`
}
