package assistant

import (
	"strings"

	"github.com/pawspoint/clinic-assistant/internal/catalog"
)

const (
	// Minimum similarity before a catalog match is reported at all.
	matchFloor = 0.55
	// Bonus applied when one normalized string literally contains the
	// other: either an abbreviated input inside a catalog name, or a
	// catalog name spoken inside a longer utterance.
	substringBoost = 0.20
)

// Anaphoric follow-up phrases: the user refers back to the previously
// discussed service without naming it.
var followupPhrases = map[string]struct{}{
	"how much is it":  {},
	"what about that": {},
	"and that one":    {},
	"how about that":  {},
}

// MatchOutcome reports how a service lookup resolved.
type MatchOutcome int

const (
	// MatchNone means no catalog entry scored at or above the floor.
	MatchNone MatchOutcome = iota
	// MatchFound means a catalog entry matched the phrase.
	MatchFound
	// MatchFollowup means the phrase referred back to the last service.
	MatchFollowup
	// MatchNeedsClarification means the phrase was a follow-up but no prior
	// service is on record.
	MatchNeedsClarification
)

// MatchService resolves a user phrase against the catalog. Follow-up
// phrases short-circuit to lastService without any similarity scoring.
func MatchService(phrase, lastService string, services []catalog.Service) (catalog.Service, MatchOutcome) {
	normalized := normalizeText(phrase)

	if _, ok := followupPhrases[normalized]; ok {
		if lastService == "" {
			return catalog.Service{}, MatchNeedsClarification
		}
		for _, svc := range services {
			if strings.EqualFold(svc.Name, lastService) {
				return svc, MatchFollowup
			}
		}
		return catalog.Service{Name: lastService}, MatchFollowup
	}

	if normalized == "" {
		return catalog.Service{}, MatchNone
	}

	var (
		best      catalog.Service
		bestScore float64
	)
	for _, svc := range services {
		candidate := normalizeText(svc.Name)
		score := similarity(normalized, candidate)
		if strings.Contains(candidate, normalized) || strings.Contains(normalized, candidate) {
			score += substringBoost
		}
		if score > bestScore {
			best = svc
			bestScore = score
		}
	}

	if bestScore < matchFloor {
		return catalog.Service{}, MatchNone
	}
	return best, MatchFound
}

// normalizeText lowercases and strips everything outside [a-z0-9 ],
// collapsing runs of whitespace.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// similarity is a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
