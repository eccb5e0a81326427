package dataprocessing

import (
	"fmt"

	"evalmarks/pkg/contracts/domain"
)

// Field identifies the response field a correction overwrites
type Field int

const (
	FieldDoorEntry Field = iota
	FieldSection
	FieldTopic
)

func (f Field) String() string {
	switch f {
	case FieldDoorEntry:
		return domain.ColumnDoorEntryNumber
	case FieldSection:
		return domain.ColumnSection
	case FieldTopic:
		return domain.ColumnTopic
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Predicate is one exact-match condition of a correction
type Predicate func(r domain.Response) bool

// Correction patches one field of a specific student's responses.
// It fires only when Email matches and every predicate in When holds.
type Correction struct {
	Email string
	When  []Predicate
	Set   Field
	Value string
}

// Name identifies the correction in logs and metrics
func (c Correction) Name() string {
	return fmt.Sprintf("%s:%s=%s", c.Email, c.Set, c.Value)
}

// Matches reports whether the correction applies to r
func (c Correction) Matches(r domain.Response) bool {
	if r.Email != c.Email {
		return false
	}
	for _, pred := range c.When {
		if !pred(r) {
			return false
		}
	}
	return true
}

// Apply returns r with the correction applied and whether a value changed
func (c Correction) Apply(r domain.Response) (domain.Response, bool) {
	if !c.Matches(r) {
		return r, false
	}

	var target *string
	switch c.Set {
	case FieldDoorEntry:
		target = &r.DoorEntry
	case FieldSection:
		target = &r.Section
	case FieldTopic:
		target = &r.Topic
	default:
		return r, false
	}

	if *target == c.Value {
		return r, false
	}
	*target = c.Value
	return r, true
}

// TopicIs matches the exact topic text
func TopicIs(topic string) Predicate {
	return func(r domain.Response) bool { return r.Topic == topic }
}

// DoorTextIs matches the exact door-entry text as typed
func DoorTextIs(text string) Predicate {
	return func(r domain.Response) bool { return r.DoorEntry == text }
}

// DoorIs matches a door-entry that reads as the number n
func DoorIs(n float64) Predicate {
	return func(r domain.Response) bool {
		door := ParseDoorNumber(r.DoorEntry)
		return door.Valid && door.Value == n
	}
}

// DoorMissing matches an empty door-entry cell
func DoorMissing() Predicate {
	return func(r domain.Response) bool { return r.DoorEntry == "" }
}

// SectionMissing matches an empty section cell
func SectionMissing() Predicate {
	return func(r domain.Response) bool { return r.Section == "" }
}

const (
	sectionA04 = "Section A04, 2-3 pm on Monday and Wednesday"
	sectionA06 = "Section A06, 3-4 pm on Monday and Wednesday"

	topic2 = "Topic 2: Estimating the Effect of an iTunes Price Change"
	topic3 = "Topic 3: Paying Employees to Relocate"
	topic4 = "Topic 4: Labor Productivity During Recessions"
	topic8 = "Topic 8: Brand-Name and Generic Drugs"
	topic9 = "Topic 9: Sale Prices"
)

// DefaultCorrections are the manual fixes identified by inspecting the
// BUEC 420 response sheet. Order matters: later entries see earlier results.
var DefaultCorrections = []Correction{
	// Missing or mistyped door-entry numbers
	{Email: "10103@ualberta.ca", When: []Predicate{TopicIs(topic3)}, Set: FieldDoorEntry, Value: "29"},
	{Email: "10134@ualberta.ca", When: []Predicate{TopicIs(topic8)}, Set: FieldDoorEntry, Value: "22"},
	{Email: "10138@ualberta.ca", When: []Predicate{DoorTextIs("41, I had submitted a form for topic 4 without door entry number by mistake.")}, Set: FieldDoorEntry, Value: "41"},
	{Email: "10138@ualberta.ca", When: []Predicate{DoorMissing()}, Set: FieldDoorEntry, Value: "41"},
	{Email: "10112@ualberta.ca", When: []Predicate{DoorTextIs("15i")}, Set: FieldDoorEntry, Value: "15"},
	{Email: "1016@ualberta.ca", When: []Predicate{TopicIs(topic2)}, Set: FieldDoorEntry, Value: "11"},
	{Email: "1016@ualberta.ca", When: []Predicate{TopicIs(topic4)}, Set: FieldDoorEntry, Value: "50"},
	{Email: "1021@ualberta.ca", When: []Predicate{TopicIs(topic4)}, Set: FieldDoorEntry, Value: "25"},
	{Email: "1028@ualberta.ca", When: []Predicate{TopicIs(topic9)}, Set: FieldDoorEntry, Value: "19"},
	{Email: "1069@ualberta.ca", When: []Predicate{TopicIs(topic9)}, Set: FieldDoorEntry, Value: "54"},
	{Email: "1088@ualberta.ca", When: []Predicate{TopicIs(topic8)}, Set: FieldDoorEntry, Value: "59"},

	// Missing sections
	{Email: "10109@ualberta.ca", When: []Predicate{SectionMissing()}, Set: FieldSection, Value: sectionA06},
	{Email: "10147@ualberta.ca", When: []Predicate{SectionMissing()}, Set: FieldSection, Value: sectionA04},
	{Email: "1099@ualberta.ca", When: []Predicate{SectionMissing()}, Set: FieldSection, Value: sectionA06},

	// Topics entered against the wrong presentation
	{Email: "1008@ualberta.ca", When: []Predicate{DoorIs(43), TopicIs(topic4)}, Set: FieldTopic, Value: topic8},
	{Email: "1056@ualberta.ca", When: []Predicate{DoorIs(59), TopicIs(topic8)}, Set: FieldTopic, Value: topic9},
}

// ApplyCorrections runs every correction in order over every response and
// returns the patched copy plus the number of changes made per correction name.
func ApplyCorrections(responses []domain.Response, corrections []Correction) ([]domain.Response, map[string]int) {
	out := make([]domain.Response, len(responses))
	applied := make(map[string]int)

	for i, r := range responses {
		for _, c := range corrections {
			var changed bool
			r, changed = c.Apply(r)
			if changed {
				applied[c.Name()]++
			}
		}
		out[i] = r
	}

	return out, applied
}
