package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/metrics"
	"student-attendance-manager/internal/student"
	"student-attendance-manager/internal/validation"
)

const (
	ReasonValidation     = "validation"
	ReasonUnknownStudent = "unknown_student"
	ReasonConstraint     = "constraint"
	ReasonArguments      = "arguments"
	ReasonOther          = "other"
)

// Stats counts what happened to the lines of one run.
type Stats struct {
	Lines    int
	Executed int
	Skipped  int
	Ignored  int
}

type Processor struct {
	registry Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewProcessor(registry Registry, m *metrics.Metrics, logger *slog.Logger) *Processor {
	return &Processor{
		registry: registry,
		metrics:  m,
		logger:   logger,
	}
}

// Run executes every line of r in order. Lines may be of any length. A failing
// line is logged and skipped; only read errors and cancellation stop the run.
func (p *Processor) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	reader := bufio.NewReader(r)

	for {
		text, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("failed to read input: %w", readErr)
		}
		if text == "" && readErr != nil {
			return stats, nil
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		p.execute(ctx, stats.Lines, text, &stats)
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if readErr != nil {
			return stats, nil
		}
	}
}

func (p *Processor) execute(ctx context.Context, lineNo int, text string, stats *Stats) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		stats.Ignored++
		return
	}

	name, args := fields[0], fields[1:]
	cmd, ok := p.registry.Get(name)
	if !ok {
		p.logger.Debug("ignoring unknown command", "line", lineNo, "command", name)
		stats.Ignored++
		return
	}

	if err := cmd.Execute(ctx, args); err != nil {
		reason := classify(err)
		p.logger.Error("skipping command",
			"line", lineNo,
			"command", name,
			"reason", reason,
			"error", err,
		)
		p.metrics.RecordCommandSkipped(ctx, name, reason)
		stats.Skipped++
		return
	}
	stats.Executed++
}

func classify(err error) string {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		return ReasonValidation
	case errors.Is(err, student.ErrStudentNotFound):
		return ReasonUnknownStudent
	case errors.Is(err, db.ErrConstraint):
		return ReasonConstraint
	case errors.Is(err, ErrInvalidArguments):
		return ReasonArguments
	default:
		return ReasonOther
	}
}
