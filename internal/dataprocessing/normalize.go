package dataprocessing

import (
	"evalmarks/pkg/contracts/domain"
)

// Exclusion drops every response recorded against a section/topic pair that
// never took place, a known data-entry error in the source sheet
type Exclusion struct {
	Section string
	Topic   string
}

// DefaultExclusions is the known invalid section/topic combination
var DefaultExclusions = []Exclusion{
	{
		Section: "Section A04, 2-3 pm on Monday and Wednesday",
		Topic:   "Topic 3: Paying Employees to Relocate",
	},
}

// Matches reports whether r was recorded against the excluded pair
func (e Exclusion) Matches(r domain.Response) bool {
	return r.Section == e.Section && r.Topic == e.Topic
}

// DropExactDuplicates keeps the first of any responses whose retained fields are all identical
func DropExactDuplicates(responses []domain.Response) ([]domain.Response, int) {
	seen := make(map[[11]string]struct{}, len(responses))
	kept := make([]domain.Response, 0, len(responses))

	for _, r := range responses {
		key := r.Fields()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}

	return kept, len(responses) - len(kept)
}

// DropExcluded removes responses matching any exclusion
func DropExcluded(responses []domain.Response, exclusions []Exclusion) ([]domain.Response, int) {
	kept := make([]domain.Response, 0, len(responses))

	for _, r := range responses {
		excluded := false
		for _, e := range exclusions {
			if e.Matches(r) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, r)
		}
	}

	return kept, len(responses) - len(kept)
}
