package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"menulens"
	"menulens/mock"
	menuslog "menulens/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs record and resolution counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*menulens.ExtractResult, error) {
				return &menulens.ExtractResult{
					Records: []menulens.Record{{Name: "Latte"}, {Name: "Mocha"}},
					Stats: menulens.ExtractStats{
						ResolvedFromLookup: 1,
						ResolvedByAltText:  1,
					},
				}, nil
			},
		}

		extractor := menuslog.NewLoggingExtractor(inner, logger)
		result, err := extractor.Extract("<html></html>")

		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "records=2")
		assert.Contains(t, output, "images_resolved=2")
	})

	t.Run("logs extraction failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*menulens.ExtractResult, error) {
				return nil, menulens.Errorf(menulens.ENOTFOUND, "structured menu data not found in snapshot")
			},
		}

		extractor := menuslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("<html></html>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "records=0")
	})
}
