package importer

import (
	"strconv"
	"strings"
	"time"
)

// Excel serial day 0 is 1899-12-30 (the serial scheme counts 1900-02-29,
// which never existed, so the epoch sits two days before 1900-01-01).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Thai spreadsheets routinely carry Buddhist-Era years (AD + 543). Any
// year past this bound cannot be a Gregorian year in this domain.
const buddhistEraThreshold = 2400

// NormalizeDate converts a raw date value of unknown representation into
// a calendar date. Handled in order: spreadsheet serial numbers, native
// time values, DD/MM/YYYY strings, generic date strings. Years above
// 2400 are treated as Buddhist Era and shifted back 543 years, which is
// idempotent for dates already in Gregorian form.
//
// When the value is absent or unparseable the current time is returned
// with ok=false so callers can record a row warning instead of losing
// the row.
func NormalizeDate(raw interface{}) (t time.Time, ok bool) {
	switch v := raw.(type) {
	case nil:
		return time.Now(), false
	case time.Time:
		return fixBuddhistEra(v), true
	case *time.Time:
		if v == nil {
			return time.Now(), false
		}
		return fixBuddhistEra(*v), true
	case float64:
		return fromSerial(v), true
	case int:
		return fromSerial(float64(v)), true
	case int64:
		return fromSerial(float64(v)), true
	case string:
		return normalizeDateString(v)
	default:
		return time.Now(), false
	}
}

func fromSerial(serial float64) time.Time {
	d := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return fixBuddhistEra(d)
}

func normalizeDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), false
	}

	// A bare number in a string cell is still a spreadsheet serial.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial), true
	}

	// DD/MM/YYYY, the form Thai reps type by hand.
	if parts := strings.Split(s, "/"); len(parts) == 3 {
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD == nil && errM == nil && errY == nil {
			if year > buddhistEraThreshold {
				year -= 543
			}
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			// time.Date normalizes out-of-range components; reject rows
			// like 32/13/2024 instead of silently shifting them.
			if d.Day() == day && int(d.Month()) == month {
				return d, true
			}
			return time.Now(), false
		}
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2.1.2006",
		"2-1-2006",
	} {
		if d, err := time.Parse(layout, s); err == nil {
			return fixBuddhistEra(d), true
		}
	}

	return time.Now(), false
}

func fixBuddhistEra(t time.Time) time.Time {
	if t.Year() > buddhistEraThreshold {
		return t.AddDate(-543, 0, 0)
	}
	return t
}
