package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"evalmarks/internal/config"
	"evalmarks/internal/infrastructure"
	"evalmarks/pkg/contracts/domain"
)

const (
	sectionA04 = config.DefaultBonusSection
	sectionA06 = "Section A06, 3-4 pm on Monday and Wednesday"
	topic1     = "Topic 1: Pricing a Concert"
	topic2     = "Topic 2: Estimating the Effect of an iTunes Price Change"
	topic3     = "Topic 3: Paying Employees to Relocate"
)

var start = time.Date(2024, 2, 5, 14, 0, 0, 0, time.UTC)

func resp(minute int, email, section, door, topic string, evals ...string) domain.Response {
	r := domain.Response{
		Timestamp: start.Add(time.Duration(minute) * time.Minute),
		Email:     email,
		Section:   section,
		DoorEntry: door,
		Topic:     topic,
	}
	copy(r.Evaluations[:], evals)
	return r
}

func sampleResponses() []domain.Response {
	first := resp(0, "a@ualberta.ca", sectionA06, "5", topic1, "2", "2", "2", "2", "2")
	return []domain.Response{
		first,
		first,
		resp(2, "x@ualberta.ca", sectionA04, "3", topic3, "2"),
		resp(1, "10112@ualberta.ca", sectionA06, "15i", topic1),
		resp(10, "b@ualberta.ca", sectionA06, "5", topic1, "1"),
		resp(3, "c@ualberta.ca", sectionA06, "99", topic1, "1"),
		resp(4, "d@ualberta.ca", sectionA04, "7", topic2, "7/8", "bad"),
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(DefaultOptions(), nil, nil)
	require.NoError(t, err)
	return p
}

func TestRun(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), sampleResponses())
	require.NoError(t, err)

	assert.Equal(t, Stats{
		ResponsesRead:      7,
		ExactDuplicates:    1,
		Excluded:           1,
		CorrectionsApplied: 1,
		Corrections:        map[string]int{"10112@ualberta.ca:Door Entry Number=15": 1},
		DuplicateClaims:    1,
		InvalidEntries:     1,
		Valid:              3,
		InvalidScores:      1,
	}, result.Stats)

	require.Len(t, result.Disqualified, 2)
	assert.Equal(t, "b@ualberta.ca", result.Disqualified[0].Email)
	assert.Equal(t, domain.ReasonDuplicateClaim, result.Disqualified[0].Reason)
	assert.Equal(t, "c@ualberta.ca", result.Disqualified[1].Email)
	assert.Equal(t, domain.ReasonInvalidEntry, result.Disqualified[1].Reason)

	assert.Equal(t, []domain.ParticipationMark{
		{Email: "10112@ualberta.ca", Section: sectionA06, Count: 1, Mark: 0.5},
		{Email: "a@ualberta.ca", Section: sectionA06, Count: 1, Mark: 0.5},
		{Email: "d@ualberta.ca", Section: sectionA04, Count: 1, Mark: 1.0},
	}, result.Participation)

	require.Len(t, result.Presentation, 2)
	bonus := result.Presentation[0]
	assert.Equal(t, sectionA04, bonus.Section)
	assert.Equal(t, domain.Float(1.75), bonus.Evaluations[0])
	assert.Equal(t, domain.Missing, bonus.Evaluations[1])
	assert.Equal(t, domain.Float(1.75), bonus.Score)

	plain := result.Presentation[1]
	assert.Equal(t, sectionA06, plain.Section)
	assert.Equal(t, 2, plain.Responses)
	assert.Equal(t, domain.Float(2), plain.Evaluations[0])
	assert.Equal(t, domain.Float(5), plain.Score)

	for _, r := range result.Valid {
		assert.True(t, r.DoorNumber.Valid)
		assert.GreaterOrEqual(t, r.DoorNumber.Value, 1.0)
		assert.LessOrEqual(t, r.DoorNumber.Value, 60.0)
	}
}

func TestRunIdempotent(t *testing.T) {
	p := newTestPipeline(t)
	in := sampleResponses()
	snapshot := append([]domain.Response(nil), in...)

	first, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, in)
}

func TestRunPartitionsInput(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), sampleResponses())
	require.NoError(t, err)

	s := result.Stats
	filtered := s.ResponsesRead - s.ExactDuplicates - s.Excluded
	assert.Equal(t, filtered, len(result.Valid)+len(result.Disqualified))

	valid := map[string]bool{}
	for _, r := range result.Valid {
		valid[r.Email] = true
	}
	for _, d := range result.Disqualified {
		assert.False(t, valid[d.Email], "%s is both valid and disqualified", d.Email)
	}
}

func TestRunCancelled(t *testing.T) {
	p := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Run(ctx, sampleResponses())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRunSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	p := newTestPipeline(t)
	ctx := infrastructure.WithRunID(context.Background(), "run-123")
	_, err := p.Run(ctx, sampleResponses())
	require.NoError(t, err)

	spans := recorder.Ended()
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}

	assert.Equal(t, []string{
		"pipeline.stage." + StageDeduplicate,
		"pipeline.stage." + StageExclude,
		"pipeline.stage." + StageCorrect,
		"pipeline.stage." + StageValidate,
		"pipeline.stage." + StageParticipation,
		"pipeline.stage." + StageScore,
		"pipeline.stage." + StagePresentation,
		"pipeline.run",
	}, names)

	root := spans[len(spans)-1]
	assert.Equal(t, codes.Ok, root.Status().Code)
	for _, attr := range root.Attributes() {
		if attr.Key == "run.id" {
			assert.Equal(t, "run-123", attr.Value.AsString())
		}
	}
	for _, s := range spans[:len(spans)-1] {
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID())
	}
}

func TestRunMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := infrastructure.CreateRunMetrics(mp.Meter("test"))
	require.NoError(t, err)

	p, err := New(DefaultOptions(), nil, metrics)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), sampleResponses())
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(7), counterTotal(t, rm, "evalmarks_responses_read_total"))
	assert.Equal(t, int64(3), counterTotal(t, rm, "evalmarks_valid_responses_total"))
	assert.Equal(t, int64(2), counterTotal(t, rm, "evalmarks_disqualified_total"))
	assert.Equal(t, int64(1), counterTotal(t, rm, "evalmarks_corrections_applied_total"))
}

func counterTotal(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return 0
}

func TestRunFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"Timestamp", "Email Address", "Section", "Door Entry Number", "Topic",
			"Evaluate 1", "Evaluate 2", "Evaluate 3", "Evaluate 4", "Evaluate 5", "Comments", "Score"},
		{"2024-02-05 14:00:00", "a@ualberta.ca", sectionA06, 5, topic1, "2", "3/4", "", "", "", "good", ""},
		{"2024-02-05 14:01:00", "b@ualberta.ca", sectionA06, 5, topic1, "1"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))

	p := newTestPipeline(t)
	result, err := p.RunFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.ResponsesRead)
	require.Len(t, result.Valid, 1)
	assert.Equal(t, "a@ualberta.ca", result.Valid[0].Email)
	assert.InDelta(t, 3.5, result.Valid[0].Total, 1e-9)
	require.Len(t, result.Disqualified, 1)
	assert.Equal(t, domain.ReasonDuplicateClaim, result.Disqualified[0].Reason)
}

func TestRunFileMissing(t *testing.T) {
	p := newTestPipeline(t)
	_, err := p.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Sheet = "Form Responses 1"
	cfg.Marks.DoorMax = 80
	cfg.Marks.BonusSection = sectionA06
	cfg.Marks.MaxPoints = 4

	opts := OptionsFromConfig(cfg)

	assert.Equal(t, "Form Responses 1", opts.Sheet)
	assert.Equal(t, 80.0, opts.Doors.Max)
	assert.Equal(t, 1.0, opts.Doors.Min)
	assert.Equal(t, sectionA06, opts.Participation.BonusSection)
	assert.Equal(t, 4.0, opts.MaxPoints)
	assert.Len(t, opts.Corrections, 16)
	assert.Len(t, opts.Exclusions, 1)
}
