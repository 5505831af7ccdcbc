package tiervalues

import (
	"fmt"
	"slices"
	"strings"
)

var tierValues = map[string]int{
	"IRON":        0,
	"BRONZE":      10000,
	"SILVER":      20000,
	"GOLD":        30000,
	"PLATINUM":    40000,
	"EMERALD":     50000,
	"DIAMOND":     60000,
	"MASTER":      70000,
	"GRANDMASTER": 80000,
	"CHALLENGER":  90000,
}

var rankValues = map[string]int{
	"IV":  0,
	"III": 2500,
	"II":  5000,
	"I":   7500,
}

// Apex tiers use league points only, the API returns no division for them.
var apexTiers = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

// IsApex verifies if a given tier is a apex tier.
func IsApex(tier string) bool {
	return slices.Contains(apexTiers, strings.ToUpper(strings.TrimSpace(tier)))
}

// Calculate numeric rank from tier and division.
// Used only for ordering, never displayed.
func CalculateRank(tier string, rank string, lp int) int {
	// Normalize the tier entry.
	tier = strings.ToUpper(tier)
	tier = strings.TrimSpace(tier)

	baseValue, exists := tierValues[tier]
	if !exists {
		return 0 // Unknown tier
	}

	// Normalize the rank entry.
	rank = strings.ToUpper(rank)
	rank = strings.TrimSpace(rank)

	divisionValue, exists := rankValues[rank]
	if !exists {
		divisionValue = 0
	}

	// Don't add the division value if it's a highelo.
	if IsApex(tier) {
		divisionValue = 0
	}

	// Return the sum of the ratings and lp.
	return baseValue + divisionValue + lp
}

// FormatRank formats a league entry into the display string.
// "DIAMOND"/"II"/32 becomes "Diamond II 32 LP", apex tiers omit the division.
func FormatRank(tier string, division string, leaguePoints int) string {
	tier = strings.ToUpper(strings.TrimSpace(tier))
	if tier == "" {
		return ""
	}

	// Only the first letter stays upper on display.
	display := tier[:1] + strings.ToLower(tier[1:])

	if IsApex(tier) || strings.TrimSpace(division) == "" {
		return fmt.Sprintf("%s %d LP", display, leaguePoints)
	}

	return fmt.Sprintf("%s %s %d LP", display, strings.ToUpper(strings.TrimSpace(division)), leaguePoints)
}
