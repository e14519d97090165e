package captions

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampFormat is one accepted encoding of a caption boundary. Formats are
// tried in order and the first successful parse wins.
type timestampFormat struct {
	name  string
	parse func(string) (int64, bool)
}

var timestampFormats = []timestampFormat{
	{name: "HH:MM:SS.mmm", parse: parseDotMillis},
	{name: "HH:MM:SS:mmm", parse: parseColonMillis},
}

// ParseTimestamp converts a caption boundary into a duration from the start of
// the media. Comma and period millisecond separators are both accepted, as is
// the four-field HH:MM:SS:mmm form.
func ParseTimestamp(value string) (time.Duration, error) {
	ms, err := timestampMillis(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// FormatTimestamp renders d as zero-padded HH:MM:SS.mmm. Negative durations
// render as zero.
func FormatTimestamp(d time.Duration) string {
	return formatMillis(d.Milliseconds())
}

// Seconds converts a canonical HH:MM:SS.mmm timestamp to fractional seconds
// using H*3600 + M*60 + S. Every field must be plain digits; only the
// seconds field may carry a fractional part.
func Seconds(value string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("timestamp %q: expected HH:MM:SS.mmm", value)
	}
	var fields [3]float64
	for i, part := range parts {
		if !isDecimal(part, i == len(parts)-1) {
			return 0, fmt.Errorf("timestamp %q: field %q is not a number", value, part)
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("timestamp %q: %w", value, err)
		}
		fields[i] = f
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

func timestampMillis(value string) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if normalized == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	for _, format := range timestampFormats {
		if ms, ok := format.parse(normalized); ok {
			return ms, nil
		}
	}
	return 0, fmt.Errorf("timestamp %q matches no accepted format", value)
}

func parseDotMillis(value string) (int64, bool) {
	hms := strings.Split(value, ":")
	if len(hms) != 3 {
		return 0, false
	}
	sec, millis, found := strings.Cut(hms[2], ".")
	if !found {
		return 0, false
	}
	return composeMillis(hms[0], hms[1], sec, millis)
}

func parseColonMillis(value string) (int64, bool) {
	fields := strings.Split(value, ":")
	if len(fields) != 4 {
		return 0, false
	}
	return composeMillis(fields[0], fields[1], fields[2], fields[3])
}

func composeMillis(hours, minutes, seconds, millis string) (int64, bool) {
	var values [4]int64
	for i, field := range []string{hours, minutes, seconds, millis} {
		n, ok := parseDigits(field)
		if !ok {
			return 0, false
		}
		values[i] = n
	}
	return (values[0]*3600+values[1]*60+values[2])*1000 + values[3], true
}

func isDecimal(value string, allowFraction bool) bool {
	whole, frac, hasFrac := strings.Cut(value, ".")
	if hasFrac && (!allowFraction || frac == "") {
		return false
	}
	if _, ok := parseDigits(whole); !ok {
		return false
	}
	if hasFrac {
		_, ok := parseDigits(frac)
		return ok
	}
	return true
}

func parseDigits(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds, millis := ms/1000, ms%1000
	minutes, seconds := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
