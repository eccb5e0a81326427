package dataprocessing

import (
	"math"
	"strings"

	"evalmarks/pkg/contracts/domain"
)

// ParseScore converts one evaluation cell to points. Only the text before the
// first whitespace counts; "n/d" is scaled to maxPoints; anything that does
// not end up as a finite number is missing.
func ParseScore(raw string, maxPoints float64) domain.NullFloat {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return domain.Missing
	}
	token := fields[0]

	if v, ok := parseFraction(token); ok {
		return finite(v * maxPoints)
	}

	v, err := toFloat(token)
	if err != nil {
		return domain.Missing
	}
	return finite(v)
}

// parseFraction reads "numerator/denominator"; a zero denominator is not a fraction
func parseFraction(token string) (float64, bool) {
	parts := strings.Split(token, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err := toFloat(parts[0])
	if err != nil {
		return 0, false
	}
	den, err := toFloat(parts[1])
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

func finite(v float64) domain.NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Missing
	}
	return domain.Float(v)
}

// NormalizeScores parses the five evaluation cells of every response and sets
// its total to the sum of the present scores. It returns the scored copy and
// the number of non-empty cells that could not be parsed.
func NormalizeScores(responses []domain.Response, maxPoints float64) ([]domain.Response, int) {
	out := make([]domain.Response, len(responses))
	invalid := 0

	for i, r := range responses {
		r.Total = 0
		for j, raw := range r.Evaluations {
			score := ParseScore(raw, maxPoints)
			if !score.Valid && strings.TrimSpace(raw) != "" {
				invalid++
			}
			r.Scores[j] = score
			if score.Valid {
				r.Total += score.Value
			}
		}
		out[i] = r
	}

	return out, invalid
}
