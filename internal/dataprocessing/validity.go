package dataprocessing

import (
	"math"
	"sort"

	"evalmarks/pkg/contracts/domain"
)

// DoorRange is the inclusive range of door-entry numbers handed out in class
type DoorRange struct {
	Min float64
	Max float64
}

// Contains reports whether n is a finite number inside the range
func (d DoorRange) Contains(n domain.NullFloat) bool {
	if !n.Valid || math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return false
	}
	return n.Value >= d.Min && n.Value <= d.Max
}

// ParseDoorNumber coerces door-entry text to a number; anything that does
// not read as a number is missing
func ParseDoorNumber(text string) domain.NullFloat {
	v, err := toFloat(text)
	if err != nil || math.IsNaN(v) {
		return domain.Missing
	}
	return domain.Float(v)
}

// claimKey identifies one attendance token. Missing door numbers compare equal.
type claimKey struct {
	section string
	door    domain.NullFloat
	topic   string
}

// SplitByValidity coerces door-entry numbers, orders responses by submission
// time and separates them into the valid set and the disqualified set.
// The earliest claim of a (section, door, topic) token wins; later claims are
// duplicate claims. Surviving claims with a missing or out-of-range door are
// invalid entries. Duplicate claims precede invalid entries in the result.
func SplitByValidity(responses []domain.Response, doors DoorRange) ([]domain.Response, []domain.Disqualification) {
	sorted := make([]domain.Response, len(responses))
	for i, r := range responses {
		r.DoorNumber = ParseDoorNumber(r.DoorEntry)
		sorted[i] = r
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	seen := make(map[claimKey]struct{}, len(sorted))
	var duplicates, invalid []domain.Disqualification
	valid := make([]domain.Response, 0, len(sorted))

	for _, r := range sorted {
		key := claimKey{section: r.Section, door: r.DoorNumber, topic: r.Topic}
		if _, claimed := seen[key]; claimed {
			duplicates = append(duplicates, domain.Disqualification{Response: r, Reason: domain.ReasonDuplicateClaim})
			continue
		}
		seen[key] = struct{}{}

		if !doors.Contains(r.DoorNumber) {
			invalid = append(invalid, domain.Disqualification{Response: r, Reason: domain.ReasonInvalidEntry})
			continue
		}
		valid = append(valid, r)
	}

	disqualified := make([]domain.Disqualification, 0, len(duplicates)+len(invalid))
	disqualified = append(disqualified, duplicates...)
	disqualified = append(disqualified, invalid...)

	return valid, disqualified
}
