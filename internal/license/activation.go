package license

import (
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 12

// DefaultActivationDays is the paid period granted by a redeemed code.
const DefaultActivationDays = 30

// GenerateCode produces a unique activation code for the given plan. The
// three-letter prefix encodes the tier so a code can be redeemed offline.
func GenerateCode(plan Plan) (string, error) {
	suffix, err := gonanoid.Generate(codeAlphabet, codeLength)
	if err != nil {
		return "", err
	}
	return string(plan)[:3] + suffix, nil
}

var codePrefixes = map[string]Plan{
	"STA": PlanStarter,
	"PRO": PlanPro,
	"TEA": PlanTeam,
}

// Activate redeems an activation code into a license valid for
// DefaultActivationDays. Unrecognized prefixes fall back to Free.
func Activate(code string) License {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 {
		return New(PlanFree, nil)
	}

	plan, ok := codePrefixes[code[:3]]
	if !ok {
		return New(PlanFree, nil)
	}

	expires := time.Now().AddDate(0, 0, DefaultActivationDays)
	return New(plan, &expires)
}

// Promotion is a promotional-code entry: a percentage discount and/or a
// number of free days on a specific plan.
type Promotion struct {
	Discount int
	FreeDays int
	Plan     Plan
}

var promotions = map[string]Promotion{
	"FIRST7":      {Discount: 0, FreeDays: 7, Plan: PlanPro},
	"BLACKFRIDAY": {Discount: 30},
	"ANNUAL50":    {Discount: 50},
	"EARLYBIRD":   {Discount: 50, FreeDays: 30, Plan: PlanPro},
}

// LookupPromotion resolves a promotional code, case-insensitively.
func LookupPromotion(code string) (Promotion, bool) {
	p, ok := promotions[strings.ToUpper(strings.TrimSpace(code))]
	return p, ok
}
