package domain

import (
	"time"
)

// EvaluationCount is the number of evaluation questions on the survey form
const EvaluationCount = 5

// Column headers of the cleaned response table, in positional order
const (
	ColumnTimestamp        = "Timestamp"
	ColumnEmail            = "Email Address"
	ColumnSection          = "Section"
	ColumnDoorEntryNumber  = "Door Entry Number"
	ColumnTopic            = "Topic"
	ColumnComments         = "Comments"
	ColumnScore            = "Score"
	ColumnDisqualification = "Disqualification"
	ColumnParticipation    = "Participation Mark"
)

// EvaluationColumns lists the headers of the five evaluation fields
var EvaluationColumns = [EvaluationCount]string{
	"Evaluate 1",
	"Evaluate 2",
	"Evaluate 3",
	"Evaluate 4",
	"Evaluate 5",
}

// NullFloat is a float64 that may be missing
type NullFloat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Float returns a present NullFloat holding v
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Missing is the absent NullFloat
var Missing = NullFloat{}

// Response is one survey submission after the comments column has been dropped.
// Raw fields keep the text exactly as it appeared in the workbook; DoorNumber
// and Scores are filled in by the cleaning stages.
type Response struct {
	Row         int                        `json:"row"` // 1-based sheet row, for diagnostics only
	Timestamp   time.Time                  `json:"timestamp"`
	Email       string                     `json:"email"`
	Section     string                     `json:"section,omitempty"`
	DoorEntry   string                     `json:"door_entry,omitempty"`
	DoorNumber  NullFloat                  `json:"door_number"`
	Topic       string                     `json:"topic,omitempty"`
	Evaluations [EvaluationCount]string    `json:"evaluations"`
	Scores      [EvaluationCount]NullFloat `json:"scores"`
	RawScore    string                     `json:"raw_score,omitempty"`
	Total       float64                    `json:"total"`
}

// Fields returns the eleven retained input fields in positional order.
// Two responses are exact duplicates when their Fields are equal.
func (r Response) Fields() [11]string {
	return [11]string{
		r.Timestamp.Format(time.RFC3339Nano),
		r.Email,
		r.Section,
		r.DoorEntry,
		r.Topic,
		r.Evaluations[0],
		r.Evaluations[1],
		r.Evaluations[2],
		r.Evaluations[3],
		r.Evaluations[4],
		r.RawScore,
	}
}

// DisqualificationReason names why a response was removed from mark calculation
type DisqualificationReason string

const (
	// ReasonDuplicateClaim marks a later submission for a door-entry token
	// already claimed in the same section and topic
	ReasonDuplicateClaim DisqualificationReason = "duplicate_claim"
	// ReasonInvalidEntry marks a missing or out-of-range door-entry number
	ReasonInvalidEntry DisqualificationReason = "invalid_entry"
)

// Disqualification is a response excluded from marking, kept for manual review
type Disqualification struct {
	Response `json:"response"`
	Reason   DisqualificationReason `json:"reason"`
}
