package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dusk-indust/compose/internal/export"
	"github.com/dusk-indust/compose/internal/pipeline"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatMarkdown:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or markdown)", format)
	}
}

// writeResults renders composed scenes. A single JSON result is written as
// one document; several become a JSON array. Markdown reports are separated
// by a horizontal rule.
func writeResults(w io.Writer, format string, results []pipeline.Result) error {
	if format == formatMarkdown {
		for i, res := range results {
			if i > 0 {
				if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, export.RenderMarkdown(res)); err != nil {
				return err
			}
		}
		return nil
	}

	if len(results) == 1 {
		return export.WriteJSON(w, export.FromResult(results[0]))
	}

	docs := make([]*export.Document, len(results))
	for i, res := range results {
		docs[i] = export.FromResult(res)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	return nil
}
