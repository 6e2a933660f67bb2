package matching

import (
	"math"
	"strings"
)

// AvailabilityBonus is the flat boost added when a volunteer's availability
// label appears in the event's date label. It is a tie-break signal, not a
// percentage: a score with the bonus applied can exceed 100.
const AvailabilityBonus = 10

// Score calculates the skill compatibility between a volunteer and an event as
// the percentage of event requirements the volunteer covers, rounded to two
// decimal places. Comparison is case-insensitive and duplicates are ignored.
//
// An event with no requirements scores 0: it states nothing to match against.
func Score(volunteerSkills, eventRequirements []string) float64 {
	reqs := normalize(eventRequirements)
	if len(reqs) == 0 {
		return 0
	}

	skills := normalize(volunteerSkills)
	overlap := 0
	for req := range reqs {
		if _, ok := skills[req]; ok {
			overlap++
		}
	}

	return round2(100 * float64(overlap) / float64(len(reqs)))
}

// ScoreWithAvailability returns the skill score plus the flat availability
// bonus when the volunteer's availability label is a case-insensitive
// substring of the event's date label. An empty availability label never
// earns the bonus.
func ScoreWithAvailability(volunteerSkills, eventRequirements []string, availability, eventDate string) float64 {
	score := Score(volunteerSkills, eventRequirements)

	avail := strings.TrimSpace(strings.ToLower(availability))
	if avail != "" && strings.Contains(strings.ToLower(eventDate), avail) {
		score += AvailabilityBonus
	}

	return score
}

// normalize lowercases and deduplicates a skill list into a set
func normalize(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(strings.ToLower(name))
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
