package service

import (
	"context"

	"github.com/onzevirtual/fm-analytics/internal/benchmark"
	"github.com/onzevirtual/fm-analytics/internal/constants"
	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/onzevirtual/fm-analytics/internal/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// VenueSummary is the result line for one venue subset.
type VenueSummary struct {
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Draws   int     `json:"draws"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
}

// BenchmarkRow is one metric compared against the reference table.
type BenchmarkRow struct {
	Metric   benchmark.Metric `json:"metric"`
	Value    float64          `json:"value"`
	Ideal    float64          `json:"ideal"`
	Status   string           `json:"status"`
	Label    string           `json:"label"`
	Color    string           `json:"color"`
	Interval string           `json:"interval"`
}

// FormWindow is a trailing-games window with the same aggregates the
// full set gets.
type FormWindow struct {
	Matches  []domain.Match `json:"matches"`
	WinRate  float64        `json:"win_rate"`
	Averages stats.Averages `json:"averages"`
}

// Dashboard is the full aggregated view over one user's match set,
// optionally narrowed by season or competition.
type Dashboard struct {
	TotalMatches int          `json:"total_matches"`
	Overall      VenueSummary `json:"overall"`
	Home         VenueSummary `json:"home"`
	Away         VenueSummary `json:"away"`

	Averages         stats.Averages `json:"averages"`
	OpponentAverages stats.Averages `json:"opponent_averages"`
	HomeAverages     stats.Averages `json:"home_averages"`
	AwayAverages     stats.Averages `json:"away_averages"`

	Benchmark []BenchmarkRow     `json:"benchmark"`
	Score     int                `json:"score"`
	Severity  benchmark.Severity `json:"severity"`
	Diagnosis string             `json:"diagnosis"`

	RecentForm     FormWindow `json:"recent_form"`
	RecentFormHome FormWindow `json:"recent_form_home"`
	RecentFormAway FormWindow `json:"recent_form_away"`

	Seasons []string `json:"seasons"`
}

type DashboardService struct {
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewDashboardService(matches *repository.MatchRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		matches: matches,
		logger:  logger.With().Str("service", "dashboard").Logger(),
	}
}

// benchmarkOrder is the presentation order of the reference metrics.
var benchmarkOrder = []benchmark.Metric{
	benchmark.MetricXG,
	benchmark.MetricGoals,
	benchmark.MetricShots,
	benchmark.MetricShotsOnTarget,
	benchmark.MetricPossession,
	benchmark.MetricPassesCompleted,
	benchmark.MetricWinRate,
}

// Build assembles the dashboard for one user. The match set and the
// season list load concurrently; everything after that is pure
// aggregation over the loaded set.
func (s *DashboardService) Build(ctx context.Context, userID int64, filter repository.MatchFilter) (*Dashboard, error) {
	var (
		matches []domain.Match
		seasons []string
	)

	loadCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListByUser(gctx, userID, filter)
		return err
	})
	g.Go(func() error {
		var err error
		seasons, err = s.matches.Seasons(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to load dashboard data")
		return nil, err
	}

	home := stats.ByVenue(matches, domain.VenueHome)
	away := stats.ByVenue(matches, domain.VenueAway)

	d := &Dashboard{
		TotalMatches: len(matches),
		Overall:      summarize(matches),
		Home:         summarize(home),
		Away:         summarize(away),

		Averages:         ownAverages(matches),
		OpponentAverages: opponentAverages(matches),
		HomeAverages:     ownAverages(home),
		AwayAverages:     ownAverages(away),

		RecentForm:     formWindow(stats.LastN(matches, constants.RecentFormWindow)),
		RecentFormHome: formWindow(stats.LastNAtVenue(matches, domain.VenueHome, constants.RecentFormWindow)),
		RecentFormAway: formWindow(stats.LastNAtVenue(matches, domain.VenueAway, constants.RecentFormWindow)),

		Seasons: seasons,
	}

	if d.TotalMatches == 0 {
		d.Severity = benchmark.SeverityWarning
		d.Diagnosis = "Record matches to unlock the benchmark analysis."
		return d, nil
	}

	values := map[benchmark.Metric]float64{
		benchmark.MetricXG:              d.Averages.XG,
		benchmark.MetricGoals:           d.Averages.Goals,
		benchmark.MetricShots:           d.Averages.Shots,
		benchmark.MetricShotsOnTarget:   d.Averages.ShotsOnTarget,
		benchmark.MetricPossession:      d.Averages.Possession,
		benchmark.MetricPassesCompleted: d.Averages.PassesCompleted,
		benchmark.MetricWinRate:         d.Overall.WinRate,
	}

	for _, metric := range benchmarkOrder {
		value, ok := values[metric]
		if !ok {
			continue
		}
		entry := benchmark.Table[metric]
		res := benchmark.Compare(value, entry, benchmark.HigherIsBetter)
		d.Benchmark = append(d.Benchmark, BenchmarkRow{
			Metric:   metric,
			Value:    value,
			Ideal:    entry.Ideal,
			Status:   res.Status.String(),
			Label:    res.Label,
			Color:    res.Color,
			Interval: res.Interval,
		})
	}

	d.Score = benchmark.Score(values)
	d.Severity, d.Diagnosis = benchmark.Diagnose(d.Score)

	return d, nil
}

func summarize(matches []domain.Match) VenueSummary {
	wins, draws, losses := stats.Results(matches)
	return VenueSummary{
		Games:   len(matches),
		Wins:    wins,
		Draws:   draws,
		Losses:  losses,
		WinRate: stats.WinRate(matches),
	}
}

// ownAverages and opponentAverages zero out empty partitions because
// the NaN means from stats.Mean cannot cross the JSON boundary.
func ownAverages(matches []domain.Match) stats.Averages {
	if len(matches) == 0 {
		return stats.Averages{}
	}
	return stats.ComputeAverages(matches, stats.Own)
}

func opponentAverages(matches []domain.Match) stats.Averages {
	if len(matches) == 0 {
		return stats.Averages{}
	}
	return stats.ComputeAverages(matches, stats.Opponent)
}

func formWindow(window []domain.Match) FormWindow {
	return FormWindow{
		Matches:  window,
		WinRate:  stats.WinRate(window),
		Averages: ownAverages(window),
	}
}
