package license

import (
	"fmt"
	"sort"
)

// UpgradeMessage is the user-facing upsell copy shown when a gate refuses
// an operation.
type UpgradeMessage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	CTA   string `json:"cta"`
	Offer string `json:"offer"`
}

var upgradeMessages = map[string]UpgradeMessage{
	"match_limit": {
		Title: "Match limit reached!",
		Text:  "You have reached the limit of the free plan. Upgrade to keep analyzing your matches!",
		CTA:   "See Plans",
		Offer: "30% off the first month with code FIRST30",
	},
	"export_pdf": {
		Title: "Premium feature",
		Text:  "Exporting PDF reports is exclusive to subscribers. Upgrade now to unlock this and more!",
		CTA:   "Upgrade",
		Offer: "7-day free trial of the Pro plan",
	},
	"multi_team": {
		Title: "Starter+ feature",
		Text:  "Managing multiple teams is exclusive to paid plans. Upgrade and follow all your teams!",
		CTA:   "See Plans",
		Offer: "Starter plan from 19.90/month",
	},
	"cloud_backup": {
		Title: "Pro feature",
		Text:  "Automatic cloud backup is exclusive to the Pro plan. Never lose your data!",
		CTA:   "Upgrade to Pro",
		Offer: "Your data safe and reachable anywhere",
	},
}

// UpgradeMessageFor returns the upsell copy for a refusal reason,
// defaulting to the match-limit message.
func UpgradeMessageFor(reason string) UpgradeMessage {
	if msg, ok := upgradeMessages[reason]; ok {
		return msg
	}
	return upgradeMessages["match_limit"]
}

// ComparisonRow is one feature row of the plan-comparison table.
type ComparisonRow struct {
	Feature string          `json:"feature"`
	Values  map[Plan]string `json:"values"`
}

// ComparePlans renders the tier table as displayable rows.
func ComparePlans() []ComparisonRow {
	features := []struct {
		name  string
		value func(Config) string
	}{
		{"Stored matches", func(c Config) string { return quota(c.MatchLimit) }},
		{"Different teams", func(c Config) string { return quota(c.TeamLimit) }},
		{"Export PDF", func(c Config) string { return flag(c.ExportPDF) }},
		{"Export Excel", func(c Config) string { return flag(c.ExportExcel) }},
		{"Cloud backup", func(c Config) string { return flag(c.CloudBackup) }},
		{"Advanced charts", func(c Config) string { return flag(c.AdvancedCharts) }},
		{"Compare seasons", func(c Config) string { return flag(c.CompareSeasons) }},
		{"Support", func(c Config) string { return c.Support }},
	}

	plans := make([]Plan, 0, len(Plans))
	for p := range Plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Config().MonthlyPrice < plans[j].Config().MonthlyPrice
	})

	rows := make([]ComparisonRow, 0, len(features))
	for _, f := range features {
		row := ComparisonRow{Feature: f.name, Values: make(map[Plan]string, len(plans))}
		for _, p := range plans {
			row.Values[p] = f.value(p.Config())
		}
		rows = append(rows, row)
	}
	return rows
}

func quota(n int) string {
	if n >= Unlimited {
		return "Unlimited"
	}
	return fmt.Sprintf("%d", n)
}

func flag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
