package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/config"
	"github.com/onzevirtual/fm-analytics/internal/database"
	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/rs/zerolog"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(userID int64, date string) domain.Match {
	d, _ := time.Parse("2006-01-02", date)
	m := domain.Match{
		UserID:      userID,
		Team:        "FC United",
		Opponent:    "City Rivals",
		Venue:       domain.VenueHome,
		Competition: "League",
		Season:      "2025/26",
		Date:        d,
		Round:       3,
		Us: domain.TeamStats{
			Possession: 58.5, Shots: 14, ShotsOnTarget: 6, XG: 1.8,
			ClearCutChances: 3, Corners: 7, PassesTotal: 520, PassesCompleted: 460,
			CrossesTotal: 18, CrossesCompleted: 6, Goals: 2,
		},
		Them: domain.TeamStats{
			Possession: 41.5, Shots: 9, ShotsOnTarget: 3, XG: 0.9,
			ClearCutChances: 1, Corners: 4, PassesTotal: 380, PassesCompleted: 300,
			CrossesTotal: 10, CrossesCompleted: 3, Goals: 1,
		},
	}
	m.Outcome = m.DeriveOutcome()
	return m
}

func TestMatchRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, zerolog.Nop())
	matches := NewMatchRepository(db, zerolog.Nop())
	ctx := context.Background()

	u, err := users.Create(ctx, "coach@example.com", "hash", "Coach")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	want := sampleMatch(u.ID, "2026-03-14")
	id, err := matches.Insert(ctx, &want)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	want.ID = id

	got, err := matches.GetByID(ctx, id, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("stored match not found")
	}
	if *got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestMatchRepository_ListFilterAndOrder(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, zerolog.Nop())
	matches := NewMatchRepository(db, zerolog.Nop())
	ctx := context.Background()

	u, err := users.Create(ctx, "coach@example.com", "hash", "Coach")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Insert out of chronological order.
	for _, date := range []string{"2026-02-01", "2026-01-01", "2026-03-01"} {
		m := sampleMatch(u.ID, date)
		if _, err := matches.Insert(ctx, &m); err != nil {
			t.Fatalf("insert %s: %v", date, err)
		}
	}
	cup := sampleMatch(u.ID, "2026-01-15")
	cup.Competition = "Cup"
	if _, err := matches.Insert(ctx, &cup); err != nil {
		t.Fatalf("insert cup match: %v", err)
	}

	all, err := matches.ListByUser(ctx, u.ID, MatchFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("listed %d matches, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.Before(all[i-1].Date) {
			t.Fatal("listing is not date-ordered")
		}
	}

	league, err := matches.ListByUser(ctx, u.ID, MatchFilter{Competition: "League"})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(league) != 3 {
		t.Fatalf("league filter returned %d matches, want 3", len(league))
	}

	count, err := matches.CountByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
}

func TestMatchRepository_DeleteEnforcesOwnership(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, zerolog.Nop())
	matches := NewMatchRepository(db, zerolog.Nop())
	ctx := context.Background()

	owner, err := users.Create(ctx, "owner@example.com", "hash", "Owner")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	other, err := users.Create(ctx, "other@example.com", "hash", "Other")
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	m := sampleMatch(owner.ID, "2026-01-01")
	id, err := matches.Insert(ctx, &m)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	deleted, err := matches.Delete(ctx, id, other.ID)
	if err != nil {
		t.Fatalf("delete as non-owner: %v", err)
	}
	if deleted {
		t.Fatal("non-owner must not delete the match")
	}

	deleted, err = matches.Delete(ctx, id, owner.ID)
	if err != nil {
		t.Fatalf("delete as owner: %v", err)
	}
	if !deleted {
		t.Fatal("owner delete reported no rows")
	}

	if deleted, _ := matches.Delete(ctx, id, owner.ID); deleted {
		t.Fatal("second delete must be a no-op")
	}
}

func TestUserRepository_PlanLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, zerolog.Nop())
	ctx := context.Background()

	u, err := users.Create(ctx, "coach@example.com", "hash", "Coach")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Plan != "FREE" {
		t.Fatalf("new user plan = %q, want FREE", u.Plan)
	}
	if u.ExpiresAt != nil {
		t.Fatal("new user must have no expiration")
	}

	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	if err := users.UpdatePlan(ctx, u.ID, "PRO", &expires); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get after upgrade: %v", err)
	}
	if got.Plan != "PRO" || got.ExpiresAt == nil {
		t.Fatalf("upgrade not persisted: %+v", got)
	}

	// Demotion clears the expiration.
	if err := users.UpdatePlan(ctx, u.ID, "FREE", nil); err != nil {
		t.Fatalf("demote: %v", err)
	}
	got, err = users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get after demote: %v", err)
	}
	if got.Plan != "FREE" || got.ExpiresAt != nil {
		t.Fatalf("demotion not persisted: %+v", got)
	}
}

func TestUserRepository_Sessions(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, zerolog.Nop())
	ctx := context.Background()

	u, err := users.Create(ctx, "coach@example.com", "hash", "Coach")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := users.CreateSession(ctx, "live-token", u.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := users.CreateSession(ctx, "dead-token", u.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("create expired session: %v", err)
	}

	got, err := users.GetSessionUser(ctx, "live-token")
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("session resolved to %+v, want user %d", got, u.ID)
	}

	if got, _ := users.GetSessionUser(ctx, "dead-token"); got != nil {
		t.Fatal("expired session must not resolve")
	}
	if got, _ := users.GetSessionUser(ctx, "unknown"); got != nil {
		t.Fatal("unknown token must not resolve")
	}

	purged, err := users.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged %d sessions, want 1", purged)
	}

	if err := users.DeleteSession(ctx, "live-token"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got, _ := users.GetSessionUser(ctx, "live-token"); got != nil {
		t.Fatal("deleted session must not resolve")
	}
}
