package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/adspend/internal/currency"
	"github.com/AngelCh415/adspend/internal/models"
	"github.com/AngelCh415/adspend/internal/narrative"
)

func decode(t *testing.T, body string) Request {
	t.Helper()
	req, err := DecodeRequest([]byte(body))
	require.NoError(t, err)
	return req
}

func TestAnalyzeSingleFrenchRow(t *testing.T) {
	req := decode(t, `{
		"rawData":[{"Nom de la campagne":"C1","Montant dépensé":"1000","clics":"50","achats":"5","impressions":"2000"}],
		"businessContext":{"revenueTotal":20000,"campaignDays":10,"dailyBudget":500,"productPrice":2000}
	}`)

	r, err := New().Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, r.Success)
	assert.Equal(t, 1000.0, r.Stats.SpendFCFA)
	assert.Equal(t, 200.0, r.Stats.CPAFCFA)
	assert.Equal(t, 20.0, r.Stats.ROAS)
	assert.Equal(t, models.DecisionScale, r.Summary.Decision)
	assert.Equal(t, models.VerdictProfitable, r.Summary.Verdict)
	assert.Equal(t, 19000.0, r.Summary.ProfitFCFA)

	byKey := map[string]models.Indicator{}
	for _, in := range r.Indicators {
		byKey[in.Key] = in
	}
	assert.InDelta(t, 2.5, byKey["ctr"].Value, 1e-9)
	assert.Equal(t, "2.50%", byKey["ctr"].FormattedValue)
	assert.InDelta(t, 10.0, byKey["conversion"].Value, 1e-9)

	require.Len(t, r.Campaigns, 1)
	assert.Equal(t, "C1", r.Campaigns[0].Name)
	assert.Equal(t, 20000.0, r.Campaigns[0].RevenueFCFA)
	assert.Equal(t, models.DecisionScale, r.Campaigns[0].Decision)

	md := r.Metadata
	assert.Equal(t, 1, md.RowCount)
	assert.Equal(t, 1, md.CampaignsCount)
	assert.Equal(t, "FCFA", md.BaseCurrency)
	assert.Equal(t, []string{"Nom de la campagne", "Montant dépensé", "clics", "achats", "impressions"}, md.Columns)
	require.NotNil(t, md.FieldMap["spend"])
	assert.Equal(t, "Montant dépensé", *md.FieldMap["spend"])
	assert.Nil(t, md.FieldMap["country"])
	assert.Nil(t, r.AINarrative)
}

func TestAnalyzeConvertsCurrencyColumn(t *testing.T) {
	req := decode(t, `{
		"rawData":[{"Campaign name":"C1","Amount Spent (USD)":10,"Link clicks":4}],
		"businessContext":{"revenueTotal":10000,"campaignDays":1,"dailyBudget":1,"productPrice":1}
	}`)
	table := currency.NewTable("FCFA", map[string]float64{"USD": 600})

	r, err := New(WithRates(table)).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, r.Stats.SpendFCFA)
	assert.Equal(t, map[string]int{"USD": 1}, r.Metadata.Currencies)
}

func TestAnalyzeInputErrors(t *testing.T) {
	bc := models.BusinessContext{RevenueTotal: 1, CampaignDays: 1, DailyBudget: 1, ProductPrice: 1}
	e := New()

	_, err := e.Analyze(context.Background(), Request{Context: bc})
	assert.True(t, eris.Is(err, ErrNoData))
	assert.Contains(t, err.Error(), "no data detected")

	zero := decode(t, `{"rawData":[{"Campaign":"A","Spend":0,"Clicks":"0"},{"Campaign":"B"}],
		"businessContext":{"revenueTotal":1,"campaignDays":1,"dailyBudget":1,"productPrice":1}}`)
	_, err = e.Analyze(context.Background(), zero)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoExploitableRows))
	assert.True(t, IsInputError(err))
	assert.Equal(t, ErrNoExploitableRows.Error(), err.Error())

	bad := zero
	bad.Context.DailyBudget = 0
	_, err = e.Analyze(context.Background(), bad)
	assert.True(t, eris.Is(err, ErrIncompleteContext))
}

func multiCampaign(t *testing.T) Request {
	return decode(t, `{
		"rawData":[
			{"Campaign":"Small","Ad set":"S1","Spend":100,"Results":1,"Clicks":10,"Impressions":1000,"Country":"SN","Date":"2024-03-02"},
			{"Campaign":"Big","Ad set":"B1","Spend":900,"Results":2,"Clicks":30,"Impressions":3000,"Country":"CI","Date":"2024-03-01"},
			{"Campaign":"Big","Ad set":"B2","Spend":300,"Results":0,"Clicks":5,"Impressions":800,"Country":"CI","Date":"2024-03-05"},
			{"Campaign":"Empty","Spend":0}
		],
		"businessContext":{"revenueTotal":6000,"campaignDays":10,"dailyBudget":100,"productPrice":2000}
	}`)
}

func TestAnalyzeAggregatesAndAllocates(t *testing.T) {
	r, err := New().Analyze(context.Background(), multiCampaign(t))
	require.NoError(t, err)

	assert.Equal(t, 4, r.Metadata.RawRowCount)
	assert.Equal(t, 3, r.Metadata.RowCount)
	assert.Equal(t, 1, r.Metadata.DroppedRows)
	assert.Equal(t, []string{"CI", "SN"}, r.Metadata.Countries)
	assert.Equal(t, &models.DateRange{From: "2024-03-01", To: "2024-03-05"}, r.Metadata.DateRange)

	require.Len(t, r.Campaigns, 2)
	assert.Equal(t, "Big", r.Campaigns[0].Name, "sorted by spend")
	assert.Equal(t, 1200.0, r.Campaigns[0].SpendFCFA)
	assert.Equal(t, "Small", r.Campaigns[1].Name)

	var spend, revenue float64
	for _, c := range r.Campaigns {
		spend += c.SpendFCFA
		revenue += c.RevenueFCFA
	}
	assert.Equal(t, r.Stats.SpendFCFA, spend)
	assert.InDelta(t, 6000.0, revenue, 0.01)

	require.Len(t, r.AdSets, 3)
	assert.Equal(t, "B1", r.AdSets[0].Name)
	assert.Equal(t, "Big", r.AdSets[0].Campaign)
	revenue = 0
	for _, a := range r.AdSets {
		revenue += a.RevenueFCFA
	}
	assert.InDelta(t, 6000.0, revenue, 0.01)

	assert.LessOrEqual(t, len(r.ActionPlan), 6)
	assert.NotNil(t, r.Conclusions.WhatWorks)
	assert.NotNil(t, r.Conclusions.Risks)
}

func TestAnalyzeNarrative(t *testing.T) {
	ok := narrative.Func(func(ctx context.Context, s narrative.Summary) (string, error) {
		assert.Equal(t, "FCFA", s.BaseCurrency)
		return "Scale Big.", nil
	})
	r, err := New(WithNarrator(ok, time.Second)).Analyze(context.Background(), multiCampaign(t))
	require.NoError(t, err)
	require.NotNil(t, r.AINarrative)
	assert.Equal(t, "Scale Big.", *r.AINarrative)
}

func TestAnalyzeNarrativeFailuresAreDropped(t *testing.T) {
	failing := narrative.Func(func(ctx context.Context, s narrative.Summary) (string, error) {
		return "", errors.New("upstream unavailable")
	})
	slow := narrative.Func(func(ctx context.Context, s narrative.Summary) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	for name, n := range map[string]narrative.Narrator{"error": failing, "timeout": slow} {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			r, err := New(WithNarrator(n, 20*time.Millisecond)).Analyze(context.Background(), multiCampaign(t))
			require.NoError(t, err)
			assert.Nil(t, r.AINarrative)
			assert.Equal(t, 1300.0, r.Stats.SpendFCFA)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestAnalyzeHugeCells(t *testing.T) {
	req := decode(t, `{
		"rawData":[
			{"Campaign":"A","Clicks":1e308,"Spend":"100000000000000000"},
			{"Campaign":"B","Clicks":1e308,"Spend":50}
		],
		"businessContext":{"revenueTotal":20000,"campaignDays":10,"dailyBudget":500,"productPrice":2000}
	}`)

	r, err := New().Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, math.MaxFloat64, r.Stats.Clicks)
	assert.Greater(t, r.Stats.SpendFCFA, 0.0)
	assert.Equal(t, 1e17, r.Campaigns[0].SpendFCFA)
	assert.Less(t, r.Summary.ProfitFCFA, 0.0)
	assert.Equal(t, models.VerdictDeficit, r.Summary.Verdict)
}
