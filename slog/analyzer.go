package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medsearch"
)

// Ensure LoggingFormAnalyzer implements medsearch.FormAnalyzer.
var _ medsearch.FormAnalyzer = (*LoggingFormAnalyzer)(nil)

// LoggingFormAnalyzer wraps a FormAnalyzer with debug logging.
type LoggingFormAnalyzer struct {
	next   medsearch.FormAnalyzer
	logger *slog.Logger
}

// NewLoggingFormAnalyzer creates a new LoggingFormAnalyzer.
func NewLoggingFormAnalyzer(next medsearch.FormAnalyzer, logger *slog.Logger) *LoggingFormAnalyzer {
	return &LoggingFormAnalyzer{next: next, logger: logger}
}

// AnalyzeForm delegates to the wrapped analyzer and logs the operation.
func (a *LoggingFormAnalyzer) AnalyzeForm(ctx context.Context, title string) (analysis medsearch.FormAnalysis, err error) {
	defer func(begin time.Time) {
		a.logger.Info("form analysis",
			"title", title,
			"form_type", string(analysis.FormType),
			"confidence", analysis.Confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AnalyzeForm(ctx, title)
}
