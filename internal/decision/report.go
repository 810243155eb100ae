package decision

import (
	"fmt"

	"github.com/AngelCh415/adspend/internal/metrics"
	"github.com/AngelCh415/adspend/internal/models"
)

const (
	maxActions         = 6
	overspendPacing    = 1.1
	underspendPacing   = 0.5
	concentrationShare = 0.7
)

// Reason explains the verdict and the global decision in one sentence.
func Reason(v models.Verdict, d models.Decision, g metrics.Global, base string) string {
	var s string
	switch v {
	case models.VerdictDeficit:
		s = fmt.Sprintf("Ad spend of %s does not pay for itself (ROAS %.2fx, profit %s).",
			metrics.Money(g.Spend, base), g.ROAS, metrics.Money(g.Profit, base))
	case models.VerdictFragile:
		s = fmt.Sprintf("Campaigns are profitable but the margin is thin (ROAS %.2fx, profit %s).",
			g.ROAS, metrics.Money(g.Profit, base))
	default:
		s = fmt.Sprintf("Campaigns return %.2fx their cost (profit %s).", g.ROAS, metrics.Money(g.Profit, base))
	}
	switch d {
	case models.DecisionScale:
		return s + " Scale the winning campaigns."
	case models.DecisionOptimise:
		return s + " Optimise before adding budget."
	}
	return s + " Stop spending and rework the offer or targeting."
}

// Conclude lists what works, what blocks and what could go wrong.
func Conclude(g metrics.Global, campaigns []*models.Bucket, base string) models.Conclusions {
	c := models.Conclusions{WhatWorks: []string{}, Blockers: []string{}, Risks: []string{}}

	for _, b := range campaigns {
		switch b.Decision {
		case models.DecisionScale:
			c.WhatWorks = append(c.WhatWorks, fmt.Sprintf("%s: ROAS %.2fx with a CPA of %s, well under break-even (%s).",
				b.Key, b.ROAS, metrics.Money(b.CPA, base), metrics.Money(g.BreakEvenCPA, base)))
		case models.DecisionStop:
			if b.Results == 0 {
				c.Blockers = append(c.Blockers, fmt.Sprintf("%s: %s spent without a single conversion.",
					b.Key, metrics.Money(b.Spend, base)))
				continue
			}
			c.Blockers = append(c.Blockers, fmt.Sprintf("%s: ROAS %.2fx and CPA %s against a break-even of %s.",
				b.Key, b.ROAS, metrics.Money(b.CPA, base), metrics.Money(g.BreakEvenCPA, base)))
		}
	}

	switch metrics.Interpret(metrics.CTRBands, g.CTR) {
	case "solid":
		c.WhatWorks = append(c.WhatWorks, fmt.Sprintf("Creatives attract clicks (CTR %.2f%%).", g.CTR))
	case "weak":
		if g.Impressions > 0 {
			c.Blockers = append(c.Blockers, fmt.Sprintf("Low CTR (%.2f%%): creatives or targeting do not earn clicks.", g.CTR))
		}
	}
	switch metrics.Interpret(metrics.ConversionBands, g.ConversionRate) {
	case "solid":
		c.WhatWorks = append(c.WhatWorks, fmt.Sprintf("Visitors convert well (%.2f%% of clicks).", g.ConversionRate))
	case "weak":
		if g.Clicks > 0 {
			c.Blockers = append(c.Blockers, fmt.Sprintf("Low conversion rate (%.2f%%): the landing page or offer loses visitors.", g.ConversionRate))
		}
	}
	if g.Results > 0 && g.CPA > g.BreakEvenCPA {
		c.Blockers = append(c.Blockers, fmt.Sprintf("Global CPA %s is above break-even (%s).",
			metrics.Money(g.CPA, base), metrics.Money(g.BreakEvenCPA, base)))
	}

	if g.PlannedBudget > 0 {
		switch {
		case g.Pacing > overspendPacing:
			c.Risks = append(c.Risks, fmt.Sprintf("Spend is %.0f%% of the planned budget (%s): overspend.",
				g.Pacing*100, metrics.Money(g.PlannedBudget, base)))
		case g.Pacing < underspendPacing:
			c.Risks = append(c.Risks, fmt.Sprintf("Only %.0f%% of the planned budget (%s) was delivered.",
				g.Pacing*100, metrics.Money(g.PlannedBudget, base)))
		}
	}
	if len(campaigns) > 1 && g.Spend > 0 {
		top := campaigns[0]
		for _, b := range campaigns[1:] {
			if b.Spend > top.Spend {
				top = b
			}
		}
		if share := top.Spend / g.Spend; share > concentrationShare {
			c.Risks = append(c.Risks, fmt.Sprintf("%s carries %.0f%% of the spend.", top.Key, share*100))
		}
	}
	if g.Results == 0 {
		c.Risks = append(c.Risks, "No conversions recorded: revenue is allocated by spend share.")
	}
	return c
}

// Plan turns bucket decisions into at most maxActions steps.
func Plan(v models.Verdict, g metrics.Global, campaigns []*models.Bucket, base string) []models.Action {
	out := []models.Action{}
	if v == models.VerdictDeficit {
		out = append(out, models.Action{
			Title:  "Rework the offer before spending more",
			Reason: fmt.Sprintf("Revenue of %s against %s of spend.", metrics.Money(g.RevenueTotal, base), metrics.Money(g.Spend, base)),
		})
	}
	for _, d := range []models.Decision{models.DecisionScale, models.DecisionOptimise, models.DecisionStop} {
		for _, b := range campaigns {
			if len(out) == maxActions {
				return out
			}
			if b.Decision != d {
				continue
			}
			out = append(out, action(b, g, base))
		}
	}
	return out
}

func action(b *models.Bucket, g metrics.Global, base string) models.Action {
	switch b.Decision {
	case models.DecisionScale:
		return models.Action{
			Title:  "Increase the budget of " + b.Key,
			Reason: fmt.Sprintf("ROAS %.2fx and CPA %s leave room under the %s break-even.", b.ROAS, metrics.Money(b.CPA, base), metrics.Money(g.BreakEvenCPA, base)),
		}
	case models.DecisionOptimise:
		return models.Action{
			Title:  "Optimise " + b.Key,
			Reason: fmt.Sprintf("Profitable (ROAS %.2fx) but CPA %s is close to break-even: test creatives and audiences.", b.ROAS, metrics.Money(b.CPA, base)),
		}
	}
	return models.Action{
		Title:  "Pause " + b.Key,
		Reason: fmt.Sprintf("ROAS %.2fx with %s spent does not cover its cost.", b.ROAS, metrics.Money(b.Spend, base)),
	}
}
