// File: pkg/transform/summary.go
package transform

import (
	"fmt"
	"strings"
)

// SummaryTitle is the title line of the summary header.
const SummaryTitle = "CODE TRANSFORMATION SUMMARY"

// LimitReachedNote returns the note emitted when the total file cap was hit.
func LimitReachedNote(maxTotalFiles int) string {
	return fmt.Sprintf("NOTE: File limit reached (%d files). Some files may have been skipped.", maxTotalFiles)
}

// withSummary prepends the summary header to body.
func withSummary(body string, tc *traversal, maxTotalFiles int) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString(lineSeparator)
	}

	line(SeparatorRule)
	line(SummaryTitle)
	line(SeparatorRule)
	line("Source Directory: " + tc.sourceRoot)
	line(fmt.Sprintf("Files Processed: %d", tc.filesProcessed))
	if limitReached(tc, maxTotalFiles) {
		line(LimitReachedNote(maxTotalFiles))
	}
	line(SeparatorRule)
	b.WriteString(lineSeparator)
	b.WriteString(lineSeparator)

	b.WriteString(body)
	return b.String()
}

func limitReached(tc *traversal, maxTotalFiles int) bool {
	return tc.filesProcessed >= maxTotalFiles
}
