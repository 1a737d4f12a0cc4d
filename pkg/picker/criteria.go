package picker

import (
	"strings"
	"time"

	"github.com/wppick/wppick/pkg/wporg"
	"golang.org/x/mod/semver"
)

// currentWPVersion is the platform version used by the tested-recent rule.
const currentWPVersion = "6.8"

// closedMarker flags listings removed from the registry.
const closedMarker = "this plugin has been closed"

// Criteria are the acceptance rules a plugin record must pass to be worth
// writing about.
type Criteria struct {
	MinInstalls   int
	MaxDays       int
	RequireTested bool
	MinRating     int
	CurrentWP     string
}

// DefaultCriteria returns the standard acceptance rules.
func DefaultCriteria() Criteria {
	return Criteria{
		MinInstalls: 500,
		MaxDays:     730,
		MinRating:   60,
		CurrentWP:   currentWPVersion,
	}
}

// Match reports whether the record passes every acceptance rule at the given
// time. A record whose last_updated value does not parse is rejected, never
// an error.
func (c Criteria) Match(p wporg.Plugin, now time.Time) bool {
	if p.ActiveInstalls < c.MinInstalls {
		return false
	}

	if p.Rating < c.MinRating {
		return false
	}

	updated, ok := p.UpdatedAt()
	if !ok {
		return false
	}

	if updated.Before(now.AddDate(0, 0, -c.MaxDays)) {
		return false
	}

	if c.RequireTested && !testedRecent(p.Tested, c.CurrentWP) {
		return false
	}

	if strings.Contains(strings.ToLower(p.ShortDescription), closedMarker) {
		return false
	}

	if strings.Contains(strings.ToLower(p.Sections["description"]), closedMarker) {
		return false
	}

	return true
}

// testedRecent compares the two most significant version components of the
// tested value against the current platform version.
func testedRecent(tested, current string) bool {
	if tested == "" {
		return false
	}

	testedMM := majorMinor(tested)
	currentMM := majorMinor(current)

	if !semver.IsValid(testedMM) || !semver.IsValid(currentMM) {
		return false
	}

	return semver.Compare(testedMM, currentMM) >= 0
}

func majorMinor(version string) string {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) >= 2 {
		return "v" + parts[0] + "." + parts[1]
	}

	return "v" + parts[0]
}
