package catalog

import (
	"sort"
	"strings"
)

// DefaultSuggestions is the number of suggestions returned when the caller
// does not ask for a specific count.
const DefaultSuggestions = 5

// Suggest scores every catalog name against a free-text query and returns
// the best matches, best first.
//
// A candidate survives the coarse filter only if every whitespace token of
// the lowercased query appears in it as a substring. Survivors score:
//
//	+100 base
//	 +50 per query token matching a whole word of the candidate
//	 +25 when the candidate starts with the first query token
//	  -1 per character of length difference between candidate and query
//
// Equal scores are broken lexicographically so results are deterministic
// regardless of catalog order. An empty query, an empty catalog, or a query
// with no surviving candidates yields an empty result; callers treat that
// as "not found", not as an error.
func Suggest(query string, names []string, max int) []string {
	lowered := strings.ToLower(query)
	tokens := strings.Fields(lowered)
	if len(tokens) == 0 || max <= 0 {
		return nil
	}

	type scored struct {
		score int
		name  string
	}

	var matches []scored
	for _, name := range names {
		candidate := strings.ToLower(name)

		all := true
		for _, token := range tokens {
			if !strings.Contains(candidate, token) {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		score := 100

		words := strings.Fields(candidate)
		for _, token := range tokens {
			for _, word := range words {
				if token == word {
					score += 50
					break
				}
			}
		}

		if strings.HasPrefix(candidate, tokens[0]) {
			score += 25
		}

		diff := len(candidate) - len(lowered)
		if diff < 0 {
			diff = -diff
		}
		score -= diff

		matches = append(matches, scored{score: score, name: name})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > max {
		matches = matches[:max]
	}

	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.name)
	}
	return result
}
