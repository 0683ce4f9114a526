// Package license implements the plan tables and the entitlement engine
// that gates feature access and storage quotas per subscription tier.
package license

// Plan identifies a subscription tier.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanStarter Plan = "STARTER"
	PlanPro     Plan = "PRO"
	PlanTeam    Plan = "TEAM"
)

// Unlimited is the sentinel quota for tiers without a real limit.
const Unlimited = 999999

// Config is the static configuration of one plan tier.
type Config struct {
	Name         string
	MonthlyPrice float64
	AnnualPrice  float64

	MatchLimit  int
	TeamLimit   int
	SeasonLimit int
	UserLimit   int

	ExportPDF      bool
	ExportExcel    bool
	CloudBackup    bool
	MultiTeam      bool
	AdvancedCharts bool
	CompareSeasons bool
	APIAccess      bool

	Support string
	Color   string
	Badge   string
}

// Plans is the immutable tier table, loaded once and referenced by value.
var Plans = map[Plan]Config{
	PlanFree: {
		Name:       "Free",
		MatchLimit: 5, TeamLimit: 1, SeasonLimit: 1, UserLimit: 1,
		Support: "community",
		Color:   "gray",
		Badge:   "free",
	},
	PlanStarter: {
		Name:         "Starter",
		MonthlyPrice: 19.90, AnnualPrice: 199.00,
		MatchLimit: 50, TeamLimit: 2, SeasonLimit: 2, UserLimit: 1,
		ExportPDF: true, MultiTeam: true, AdvancedCharts: true,
		Support: "email",
		Color:   "blue",
		Badge:   "starter",
	},
	PlanPro: {
		Name:         "Pro",
		MonthlyPrice: 39.90, AnnualPrice: 399.00,
		MatchLimit: Unlimited, TeamLimit: Unlimited, SeasonLimit: Unlimited, UserLimit: 1,
		ExportPDF: true, ExportExcel: true, CloudBackup: true,
		MultiTeam: true, AdvancedCharts: true, CompareSeasons: true,
		Support: "priority",
		Color:   "green",
		Badge:   "pro",
	},
	PlanTeam: {
		Name:         "Team",
		MonthlyPrice: 99.90, AnnualPrice: 999.00,
		MatchLimit: Unlimited, TeamLimit: Unlimited, SeasonLimit: Unlimited, UserLimit: 5,
		ExportPDF: true, ExportExcel: true, CloudBackup: true,
		MultiTeam: true, AdvancedCharts: true, CompareSeasons: true, APIAccess: true,
		Support: "vip",
		Color:   "purple",
		Badge:   "team",
	},
}

// Config returns the tier configuration, falling back to Free for
// unknown plan identifiers.
func (p Plan) Config() Config {
	if cfg, ok := Plans[p]; ok {
		return cfg
	}
	return Plans[PlanFree]
}

// Valid reports whether p names a known tier.
func (p Plan) Valid() bool {
	_, ok := Plans[p]
	return ok
}
