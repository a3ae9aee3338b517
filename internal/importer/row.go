// Package importer holds the row-level reconciliation helpers shared by
// the bulk import pipelines: multi-key field resolution for messy
// spreadsheet headers, Buddhist-Era-aware date normalization and
// free-text status inference.
package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one loosely-typed input row, keyed by whatever the spreadsheet
// or JSON payload called its columns.
type Row map[string]interface{}

// Field returns the first non-empty trimmed value found under any of the
// candidate keys, in order. Key matching is case-sensitive; the candidate
// lists carry the known Thai/English spelling variants instead.
func Field(row Row, keys ...string) (string, bool) {
	for _, k := range keys {
		v, exists := row[k]
		if !exists || v == nil {
			continue
		}
		s := strings.TrimSpace(coerceString(v))
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// Number resolves a field like Field and parses it as a float after
// stripping thousands separators.
func Number(row Row, keys ...string) (float64, bool) {
	s, ok := Field(row, keys...)
	if !ok {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0" so codes like 1024 round-trip cleanly.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
