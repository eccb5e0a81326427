package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"evalmarks/internal/dataprocessing"
	"evalmarks/internal/infrastructure"
	"evalmarks/pkg/contracts/domain"
)

const (
	TracerName = "evalmarks.pipeline"

	StageParse         = "parse"
	StageDeduplicate   = "deduplicate"
	StageExclude       = "exclude"
	StageCorrect       = "correct"
	StageValidate      = "validate"
	StageParticipation = "participation"
	StageScore         = "score"
	StagePresentation  = "presentation"
)

// Stats counts what each stage did during a run
type Stats struct {
	ResponsesRead        int            `json:"responses_read"`
	ExactDuplicates      int            `json:"exact_duplicates"`
	Excluded             int            `json:"excluded"`
	CorrectionsApplied   int            `json:"corrections_applied"`
	Corrections          map[string]int `json:"corrections"`
	DuplicateClaims      int            `json:"duplicate_claims"`
	InvalidEntries       int            `json:"invalid_entries"`
	Valid                int            `json:"valid"`
	InvalidScores        int            `json:"invalid_scores"`
	ParticipationSkipped int            `json:"participation_skipped"`
	PresentationSkipped  int            `json:"presentation_skipped"`
}

// LogValue renders the stats as a log group
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("responses_read", s.ResponsesRead),
		slog.Int("exact_duplicates", s.ExactDuplicates),
		slog.Int("excluded", s.Excluded),
		slog.Int("corrections_applied", s.CorrectionsApplied),
		slog.Int("duplicate_claims", s.DuplicateClaims),
		slog.Int("invalid_entries", s.InvalidEntries),
		slog.Int("valid", s.Valid),
		slog.Int("invalid_scores", s.InvalidScores),
	)
}

// Result holds the cleaned data and the three report tables
type Result struct {
	// Valid responses with their evaluation scores parsed
	Valid         []domain.Response
	Disqualified  []domain.Disqualification
	Participation []domain.ParticipationMark
	Presentation  []domain.PresentationMark
	Stats         Stats
}

// Pipeline runs the cleaning stages with tracing and run metrics
type Pipeline struct {
	opts    Options
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// New creates a pipeline. A nil metrics value records onto the global meter provider.
func New(opts Options, logger *slog.Logger, metrics *infrastructure.RunMetrics) (*Pipeline, error) {
	if metrics == nil {
		var err error
		metrics, err = infrastructure.CreateRunMetrics(otel.Meter(infrastructure.MeterName))
		if err != nil {
			return nil, fmt.Errorf("failed to create run metrics: %w", err)
		}
	}

	return &Pipeline{
		opts:    opts,
		logger:  infrastructure.WithComponent(logger, "pipeline"),
		tracer:  otel.Tracer(TracerName),
		metrics: metrics,
	}, nil
}

// RunFile parses the workbook at path and runs every stage on it
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", infrastructure.GetRunID(ctx)),
			attribute.String("input.file", path),
		),
	)
	defer span.End()

	var responses []domain.Response
	err := p.stage(ctx, StageParse, func(ctx context.Context) (int, error) {
		var err error
		responses, err = dataprocessing.ParseFile(path, p.opts.Sheet)
		return len(responses), err
	})
	if err != nil {
		return nil, endSpan(span, err)
	}

	result, err := p.process(ctx, responses)
	return result, endSpan(span, err)
}

// Run runs every stage after parsing on responses. The input slice is not modified.
func (p *Pipeline) Run(ctx context.Context, responses []domain.Response) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("run.id", infrastructure.GetRunID(ctx))),
	)
	defer span.End()

	result, err := p.process(ctx, responses)
	return result, endSpan(span, err)
}

func (p *Pipeline) process(ctx context.Context, responses []domain.Response) (*Result, error) {
	result := &Result{}
	stats := &result.Stats
	stats.ResponsesRead = len(responses)
	p.metrics.ResponsesRead.Add(ctx, int64(len(responses)))

	err := p.stage(ctx, StageDeduplicate, func(ctx context.Context) (int, error) {
		responses, stats.ExactDuplicates = dataprocessing.DropExactDuplicates(responses)
		p.metrics.ExactDuplicates.Add(ctx, int64(stats.ExactDuplicates))
		return len(responses), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageExclude, func(ctx context.Context) (int, error) {
		responses, stats.Excluded = dataprocessing.DropExcluded(responses, p.opts.Exclusions)
		p.metrics.ExcludedResponses.Add(ctx, int64(stats.Excluded))
		return len(responses), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageCorrect, func(ctx context.Context) (int, error) {
		responses, stats.Corrections = dataprocessing.ApplyCorrections(responses, p.opts.Corrections)
		for name, n := range stats.Corrections {
			stats.CorrectionsApplied += n
			p.metrics.CorrectionsApplied.Add(ctx, int64(n),
				metric.WithAttributes(attribute.String("rule", name)))
			p.logger.DebugContext(ctx, "Correction applied",
				slog.String("rule", name),
				slog.Int("changes", n))
		}
		return len(responses), nil
	})
	if err != nil {
		return nil, err
	}

	var valid []domain.Response
	err = p.stage(ctx, StageValidate, func(ctx context.Context) (int, error) {
		valid, result.Disqualified = dataprocessing.SplitByValidity(responses, p.opts.Doors)
		for _, d := range result.Disqualified {
			switch d.Reason {
			case domain.ReasonDuplicateClaim:
				stats.DuplicateClaims++
			case domain.ReasonInvalidEntry:
				stats.InvalidEntries++
			}
		}
		stats.Valid = len(valid)
		p.metrics.Disqualified.Add(ctx, int64(stats.DuplicateClaims),
			metric.WithAttributes(attribute.String("reason", string(domain.ReasonDuplicateClaim))))
		p.metrics.Disqualified.Add(ctx, int64(stats.InvalidEntries),
			metric.WithAttributes(attribute.String("reason", string(domain.ReasonInvalidEntry))))
		p.metrics.ValidResponses.Add(ctx, int64(stats.Valid))
		return len(valid), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageParticipation, func(ctx context.Context) (int, error) {
		result.Participation, stats.ParticipationSkipped = dataprocessing.ParticipationMarks(valid, p.opts.Participation)
		if stats.ParticipationSkipped > 0 {
			p.logger.WarnContext(ctx, "Responses without email or section left out of participation marks",
				slog.Int("count", stats.ParticipationSkipped))
		}
		return len(result.Participation), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageScore, func(ctx context.Context) (int, error) {
		result.Valid, stats.InvalidScores = dataprocessing.NormalizeScores(valid, p.opts.MaxPoints)
		p.metrics.InvalidScores.Add(ctx, int64(stats.InvalidScores))
		return len(result.Valid), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StagePresentation, func(ctx context.Context) (int, error) {
		result.Presentation, stats.PresentationSkipped = dataprocessing.PresentationMarks(result.Valid)
		if stats.PresentationSkipped > 0 {
			p.logger.WarnContext(ctx, "Responses without section or topic left out of presentation marks",
				slog.Int("count", stats.PresentationSkipped))
		}
		return len(result.Presentation), nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "Pipeline completed", slog.Any("stats", result.Stats))
	return result, nil
}

// stage runs fn inside a span, records its duration and logs the row count it returns
func (p *Pipeline) stage(ctx context.Context, name string, fn func(ctx context.Context) (int, error)) error {
	if err := ctx.Err(); err != nil {
		p.logger.WarnContext(ctx, "Run cancelled", slog.String("stage", name))
		return err
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.stage."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("stage.name", name)),
	)
	defer span.End()

	start := time.Now()
	rows, err := fn(ctx)
	elapsed := time.Since(start)

	p.metrics.StageDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("stage", name)))

	if err != nil {
		p.logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
		return endSpan(span, err)
	}

	span.SetAttributes(attribute.Int("stage.rows", rows))
	p.logger.InfoContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.Int("rows", rows),
		slog.Duration("duration", elapsed))
	return endSpan(span, nil)
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
