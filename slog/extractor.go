package slog

import (
	"log/slog"
	"time"

	"menulens"
)

// Ensure LoggingExtractor implements menulens.Extractor.
var _ menulens.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   menulens.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next menulens.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string) (result *menulens.ExtractResult, err error) {
	defer func(begin time.Time) {
		var records, resolved int
		if result != nil {
			records = len(result.Records)
			resolved = result.Stats.ResolvedFromLookup +
				result.Stats.ResolvedByAltText +
				result.Stats.ResolvedByFilename
		}
		e.logger.Info("extract",
			"records", records,
			"images_resolved", resolved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
