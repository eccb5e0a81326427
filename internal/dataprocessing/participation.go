package dataprocessing

import (
	"sort"

	"evalmarks/pkg/contracts/domain"
)

// ParticipationRules sets how valid responses turn into participation marks
type ParticipationRules struct {
	PointsPerResponse float64
	BonusSection      string
	SectionBonus      float64
}

type studentKey struct {
	email   string
	section string
}

// ParticipationMarks counts valid responses per (email, section) and converts
// each count to a mark. Responses without an email or section cannot be
// credited to anyone and are skipped; the second return value counts them.
func ParticipationMarks(valid []domain.Response, rules ParticipationRules) ([]domain.ParticipationMark, int) {
	counts := make(map[studentKey]int)
	skipped := 0

	for _, r := range valid {
		if r.Email == "" || r.Section == "" {
			skipped++
			continue
		}
		counts[studentKey{email: r.Email, section: r.Section}]++
	}

	marks := make([]domain.ParticipationMark, 0, len(counts))
	for key, count := range counts {
		mark := float64(count) * rules.PointsPerResponse
		if rules.BonusSection != "" && key.section == rules.BonusSection {
			mark += rules.SectionBonus
		}
		marks = append(marks, domain.ParticipationMark{
			Email:   key.email,
			Section: key.section,
			Count:   count,
			Mark:    mark,
		})
	}

	sort.Slice(marks, func(i, j int) bool {
		if marks[i].Email != marks[j].Email {
			return marks[i].Email < marks[j].Email
		}
		return marks[i].Section < marks[j].Section
	})

	return marks, skipped
}
