package license

import (
	"strings"
	"testing"
	"time"
)

func future(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name string
		lic  License
		want bool
	}{
		{"free is always active", New(PlanFree, nil), true},
		{"paid without expiration", New(PlanPro, nil), false},
		{"paid with future expiration", New(PlanPro, future(24 * time.Hour)), true},
		{"paid expired one second ago", New(PlanPro, future(-time.Second)), false},
		{"starter expired", New(PlanStarter, future(-30 * 24 * time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lic.IsActive(); got != tt.want {
				t.Fatalf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	if got := New(PlanFree, nil).DaysRemaining(); got != UnlimitedDays {
		t.Fatalf("free DaysRemaining = %d, want sentinel", got)
	}
	if got := New(PlanPro, nil).DaysRemaining(); got != 0 {
		t.Fatalf("unset expiration DaysRemaining = %d, want 0", got)
	}
	if got := New(PlanPro, future(-time.Hour)).DaysRemaining(); got != 0 {
		t.Fatalf("expired DaysRemaining = %d, want 0", got)
	}
	if got := New(PlanPro, future(10*24*time.Hour+time.Minute)).DaysRemaining(); got != 10 {
		t.Fatalf("DaysRemaining = %d, want 10", got)
	}
}

func TestCanAddMatch_Quota(t *testing.T) {
	free := New(PlanFree, nil)

	ok, msg := free.CanAddMatch(4)
	if !ok || msg != "" {
		t.Fatalf("4/5 should be allowed, got (%v, %q)", ok, msg)
	}

	ok, msg = free.CanAddMatch(5)
	if ok {
		t.Fatal("5/5 should be refused")
	}
	if !strings.Contains(msg, "Limit of 5 matches") {
		t.Fatalf("quota refusal must name the limit, got %q", msg)
	}
}

func TestCanAddMatch_Expired(t *testing.T) {
	expired := New(PlanPro, future(-time.Second))

	ok, msg := expired.CanAddMatch(0)
	if ok {
		t.Fatal("expired license must refuse inserts")
	}
	if !strings.Contains(msg, "Renew") {
		t.Fatalf("expired refusal must ask for renewal, got %q", msg)
	}
}

func TestFeatureGates_CollapseWhenInactive(t *testing.T) {
	// Pro nominally has every flag; one second past expiration they must
	// all read false.
	expired := New(PlanPro, future(-time.Second))

	gates := map[string]bool{
		"pdf":      expired.CanExportPDF(),
		"excel":    expired.CanExportExcel(),
		"backup":   expired.CanCloudBackup(),
		"teams":    expired.CanMultiTeam(),
		"charts":   expired.HasAdvancedCharts(),
		"seasons":  expired.CanCompareSeasons(),
	}
	for name, got := range gates {
		if got {
			t.Errorf("gate %s = true on expired license", name)
		}
	}
}

func TestFeatureGates_FollowPlanFlags(t *testing.T) {
	starter := New(PlanStarter, future(24*time.Hour))

	if !starter.CanExportPDF() {
		t.Error("active starter should export PDF")
	}
	if starter.CanExportExcel() {
		t.Error("starter must not export Excel")
	}
	if starter.CanCloudBackup() {
		t.Error("starter must not cloud backup")
	}
	if !starter.CanMultiTeam() {
		t.Error("active starter should manage multiple teams")
	}

	free := New(PlanFree, nil)
	if free.CanExportPDF() || free.CanExportExcel() || free.CanCloudBackup() {
		t.Error("free tier has no export/backup entitlements")
	}
}

func TestPlanConfigFallback(t *testing.T) {
	got := Plan("NONSENSE").Config()
	if got.Name != Plans[PlanFree].Name {
		t.Fatalf("unknown plan must fall back to Free, got %q", got.Name)
	}
	if Plan("NONSENSE").Valid() {
		t.Fatal("unknown plan must not be valid")
	}
}

func TestGenerateAndActivateCode(t *testing.T) {
	code, err := GenerateCode(PlanPro)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if !strings.HasPrefix(code, "PRO") || len(code) != 3+codeLength {
		t.Fatalf("unexpected code shape: %q", code)
	}

	lic := Activate(code)
	if lic.Plan != PlanPro {
		t.Fatalf("activated plan = %s, want PRO", lic.Plan)
	}
	if !lic.IsActive() {
		t.Fatal("freshly activated license must be active")
	}
	if lic.DaysRemaining() > DefaultActivationDays {
		t.Fatalf("DaysRemaining = %d beyond granted period", lic.DaysRemaining())
	}
}

func TestActivate_UnknownPrefixFallsBackToFree(t *testing.T) {
	lic := Activate("XYZ123456789")
	if lic.Plan != PlanFree || lic.ExpiresAt != nil {
		t.Fatalf("unknown prefix must yield Free, got %+v", lic)
	}
	if lic := Activate(""); lic.Plan != PlanFree {
		t.Fatalf("empty code must yield Free, got %+v", lic)
	}
}

func TestLookupPromotion(t *testing.T) {
	p, ok := LookupPromotion("earlybird")
	if !ok {
		t.Fatal("EARLYBIRD should resolve case-insensitively")
	}
	if p.Discount != 50 || p.FreeDays != 30 || p.Plan != PlanPro {
		t.Fatalf("unexpected promotion %+v", p)
	}
	if _, ok := LookupPromotion("NOPE"); ok {
		t.Fatal("unknown promotion must not resolve")
	}
}

func TestComparePlans(t *testing.T) {
	rows := ComparePlans()
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(rows))
	}
	for _, row := range rows {
		if len(row.Values) != len(Plans) {
			t.Fatalf("row %q covers %d plans, want %d", row.Feature, len(row.Values), len(Plans))
		}
	}

	for _, row := range rows {
		if row.Feature == "Stored matches" {
			if row.Values[PlanFree] != "5" {
				t.Errorf("free match quota rendered as %q", row.Values[PlanFree])
			}
			if row.Values[PlanPro] != "Unlimited" {
				t.Errorf("pro match quota rendered as %q", row.Values[PlanPro])
			}
		}
	}
}
