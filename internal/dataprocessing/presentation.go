package dataprocessing

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"evalmarks/pkg/contracts/domain"
)

type groupKey struct {
	section string
	topic   string
}

// PresentationMarks averages the scored valid responses per (section, topic).
// Each evaluation mean skips missing scores and is missing when no evaluator
// gave that score; the total mean covers every response in the group.
// Responses without a section or topic are skipped and counted.
func PresentationMarks(responses []domain.Response) ([]domain.PresentationMark, int) {
	groups := make(map[groupKey][]domain.Response)
	skipped := 0

	for _, r := range responses {
		if r.Section == "" || r.Topic == "" {
			skipped++
			continue
		}
		key := groupKey{section: r.Section, topic: r.Topic}
		groups[key] = append(groups[key], r)
	}

	marks := make([]domain.PresentationMark, 0, len(groups))
	for key, rows := range groups {
		mark := domain.PresentationMark{
			Section:   key.section,
			Topic:     key.topic,
			Responses: len(rows),
		}

		for i := range mark.Evaluations {
			values := make([]float64, 0, len(rows))
			for _, r := range rows {
				if r.Scores[i].Valid {
					values = append(values, r.Scores[i].Value)
				}
			}
			mark.Evaluations[i] = mean(values)
		}

		totals := make([]float64, len(rows))
		for i, r := range rows {
			totals[i] = r.Total
		}
		mark.Score = mean(totals)

		marks = append(marks, mark)
	}

	sort.Slice(marks, func(i, j int) bool {
		if marks[i].Section != marks[j].Section {
			return marks[i].Section < marks[j].Section
		}
		return marks[i].Topic < marks[j].Topic
	})

	return marks, skipped
}

func mean(values []float64) domain.NullFloat {
	if len(values) == 0 {
		return domain.Missing
	}
	return domain.Float(stat.Mean(values, nil))
}
