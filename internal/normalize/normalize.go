package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOMillis is the instant format used everywhere an alert carries a
// timestamp: midnight-UTC ISO-8601 with millisecond precision.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

var dateRe = regexp.MustCompile(`^\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})\s*$`)

func IsDate(s string) bool {
	return dateRe.MatchString(s)
}

// Date converts M[M]/D[D]/YY[YY] (slash or dash separated) to a midnight-UTC
// ISO-8601 instant. Two-digit years get a "20" prefix, nothing smarter.
// Anything that does not conform comes back unchanged so callers can keep the
// raw value in metadata instead of losing it.
func Date(s string) string {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	yearStr := m[3]
	if len(yearStr) == 2 {
		yearStr = "20" + yearStr
	}
	year, _ := strconv.Atoi(yearStr)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return s
	}
	return t.Format(ISOMillis)
}

var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]`)

// MCN strips everything outside [A-Za-z0-9] and uppercases the rest.
// Empty in, empty out.
func MCN(s string) string {
	return strings.ToUpper(strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, "")))
}

// TitleCase lowercases the input and capitalizes each whitespace-delimited
// word, with fixups for Mc/Mac and O' surname prefixes. It is a heuristic:
// short Mac- words like "Macy" are left as plain title case.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = fixupWord(capitalize(w))
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func fixupWord(w string) string {
	switch {
	case strings.HasPrefix(w, "Mc") && len(w) > 2:
		return "Mc" + capitalize(w[2:])
	case strings.HasPrefix(w, "Mac") && len(w) > 4:
		return "Mac" + capitalize(w[3:])
	case strings.HasPrefix(w, "O'") && len(w) > 2:
		return "O'" + capitalize(w[2:])
	}
	return w
}

type PersonName struct {
	First string
	Last  string
}

// ImportName splits a "LAST, FIRST [MIDDLE...][, SUFFIX...]" export value.
// One segment is treated entirely as a last name; segments past the second
// are joined and appended to the first name as a suffix. Each segment is
// title-cased on its own.
func ImportName(s string) PersonName {
	raw := strings.Split(s, ",")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	switch len(segments) {
	case 0:
		return PersonName{}
	case 1:
		return PersonName{Last: TitleCase(segments[0])}
	}
	first := TitleCase(segments[1])
	if len(segments) > 2 {
		for _, suffix := range segments[2:] {
			first += " " + TitleCase(suffix)
		}
	}
	return PersonName{First: first, Last: TitleCase(segments[0])}
}
