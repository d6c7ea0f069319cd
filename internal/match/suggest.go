package match

import "sort"

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.5

// Candidate is a known name with its similarity score against a query.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against the query and returns candidates
// sorted by descending score. Ties break alphabetically for determinism.
func Rank(query string, known []string) []Candidate {
	candidates := make([]Candidate, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: Similarity(query, name),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}

		return candidates[i].Name < candidates[j].Name
	})

	return candidates
}

// Closest returns up to limit known names scoring at least DefaultMinScore
// against the query, best first. Used for "did you mean" suggestions.
func Closest(query string, known []string, limit int) []string {
	var out []string

	for _, c := range Rank(query, known) {
		if c.Score < DefaultMinScore || len(out) >= limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
