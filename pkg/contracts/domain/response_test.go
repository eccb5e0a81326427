package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisqualificationPromotesResponseFields(t *testing.T) {
	ts := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	d := Disqualification{
		Response: Response{
			Timestamp:  ts,
			Email:      "a@ualberta.ca",
			Section:    "S1",
			DoorEntry:  "5",
			DoorNumber: Float(5),
			Topic:      "T1",
			RawScore:   "9",
		},
		Reason: ReasonDuplicateClaim,
	}

	assert.Equal(t, ts, d.Timestamp)
	assert.Equal(t, "a@ualberta.ca", d.Email)
	assert.Equal(t, "5", d.DoorEntry)
	assert.Equal(t, Float(5), d.DoorNumber)
	assert.Equal(t, d.Response.Fields(), d.Fields())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"response":{`)
	assert.Contains(t, string(data), `"reason":"duplicate_claim"`)
}

func TestFieldsExcludesRowAndDerivedValues(t *testing.T) {
	a := Response{Row: 2, Email: "a@ualberta.ca", Evaluations: [EvaluationCount]string{"2"}}
	b := a
	b.Row = 7
	b.Total = 2
	b.Scores[0] = Float(2)

	assert.Equal(t, a.Fields(), b.Fields())
}
