package ingest

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/xpc-health/rosterflow/models/roster"
)

// sentinelTokens are the labels both known roster layouts share. Counting how
// many land in column 0 versus row 0 tells the layouts apart without an
// explicit format flag from the uploader.
var sentinelTokens = []string{"name", "age", "gender", "appointment"}

// DetectOrientation classifies a roster table as column-based (labels down
// column 0) or row-based (labels across row 0). Tables too small to inspect
// come back OrientationUnknown; callers fall back to row-based for those.
func DetectOrientation(table roster.RawTable) roster.Orientation {
	if len(table) < 2 || len(table[0]) < 2 {
		return roster.OrientationUnknown
	}

	var firstColumn []string
	for _, row := range table {
		if len(row) > 0 {
			firstColumn = append(firstColumn, strings.ToLower(strings.TrimSpace(row[0])))
		}
	}

	var firstRow []string
	for _, cell := range table[0] {
		if cell != "" {
			firstRow = append(firstRow, strings.ToLower(strings.TrimSpace(cell)))
		}
	}

	columnMatches := countSentinels(firstColumn)
	rowMatches := countSentinels(firstRow)

	// At least 3 of the 4 sentinel labels is taken as a confident match.
	if columnMatches >= 3 {
		return roster.OrientationColumnBased
	}
	if rowMatches >= 3 {
		return roster.OrientationRowBased
	}
	return roster.OrientationRowBased
}

func countSentinels(cells []string) int {
	count := 0
	for _, token := range sentinelTokens {
		if slices.Contains(cells, token) {
			count++
		}
	}
	return count
}
