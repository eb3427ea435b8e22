package google

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

// Expected header names. The kind column is historically called "type".
var headerNames = []string{"timestamp", "description", "category", "amount", "type"}

// rowsToRecords converts a values matrix (as returned by the Sheets API)
// into raw ledger rows. The first row must be the header; columns are
// matched by name, case-insensitively, so reordering columns in the sheet
// does not break read-back. A missing header falls back to the canonical
// column order.
func rowsToRecords(values [][]interface{}) []core.Row {
	if len(values) == 0 {
		return nil
	}

	headers := toStrings(values[0])
	idx := make([]int, len(headerNames))
	headered := false
	for i, name := range headerNames {
		idx[i] = indexOf(headers, name)
		if idx[i] >= 0 {
			headered = true
		}
	}
	start := 1
	if !headered {
		// No recognizable header row; treat every row as data in
		// canonical order.
		for i := range idx {
			idx[i] = i
		}
		start = 0
	}

	out := make([]core.Row, 0, len(values)-start)
	for _, row := range values[start:] {
		cols := toStrings(row)
		out = append(out, core.Row{
			Timestamp:   safeGet(cols, idx[0]),
			Description: safeGet(cols, idx[1]),
			Category:    safeGet(cols, idx[2]),
			Amount:      safeGet(cols, idx[3]),
			Kind:        safeGet(cols, idx[4]),
		})
	}
	return out
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
