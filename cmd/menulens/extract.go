package main

import (
	"fmt"

	"menulens"
	"menulens/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	processor := &extract.Processor{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}
	if c.RateLimit > 0 {
		processor.Limiter = extract.NewHostLimiter(c.RateLimit)
	}

	results, err := processor.Process(deps.Ctx, c.Sources)
	if err != nil {
		return err
	}

	var written, failed int
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", res.URL, errorText(res.Err))
			failed++
			continue
		}

		if err := deps.Writer.WriteRecords(deps.Ctx, res.Result.Records); err != nil {
			return fmt.Errorf("failed to write records for %s: %w", res.URL, err)
		}
		written += len(res.Result.Records)

		if deps.Runs != nil {
			run := &menulens.Run{
				StoreURL:     res.URL,
				SnapshotHash: res.Result.SnapshotHash,
				ImageCount:   res.Result.Stats.LookupEntries,
			}
			if err := deps.Runs.CreateRun(deps.Ctx, run, res.Result.Records); err != nil {
				return fmt.Errorf("failed to record run for %s: %w", res.URL, err)
			}
		}

		stats := res.Result.Stats
		resolved := stats.ResolvedFromLookup + stats.ResolvedByAltText + stats.ResolvedByFilename
		fmt.Fprintf(deps.Stderr, "%s: %d items, %d with images\n", res.URL, len(res.Result.Records), resolved)
	}

	if failed == len(results) {
		return fmt.Errorf("all %d sources failed", failed)
	}

	fmt.Fprintf(deps.Stderr, "wrote %d records from %d sources\n", written, len(results)-failed)
	return nil
}

// errorText prefers the human-readable message of domain errors.
func errorText(err error) string {
	if code := menulens.ErrorCode(err); code != menulens.EINTERNAL {
		return menulens.ErrorMessage(err)
	}
	return err.Error()
}
