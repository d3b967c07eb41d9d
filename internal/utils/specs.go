package utils

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	thousandsMatcher   = regexp2.MustCompile(`(?<=\d),(?=\d{3}(?!\d))`, 0)
	numberMatcher      = regexp2.MustCompile(`-?\d+(?:\.\d+)?`, 0)
	unsignedMatcher    = regexp2.MustCompile(`\d+(?:\.\d+)?`, 0)
	integerMatcher     = regexp2.MustCompile(`^\s*\d+\s*$`, 0)
	moduleCountMatcher = regexp2.MustCompile(`(\d+)\s*[x×]\s*\d`, regexp2.IgnoreCase)
	listSeparator      = regexp2.MustCompile(`\s*[,;/|\n]\s*`, 0)
	tokenNoise         = regexp2.MustCompile(`[\s\-_]+`, 0)
	chipsetMatcher     = regexp2.MustCompile(`\b([abhxzq]\d{3})[a-z]?\b`, regexp2.IgnoreCase)
	ryzenMatcher       = regexp2.MustCompile(`ryzen\s+(?:threadripper\s+|[3579]\s+)(?:pro\s+)?(\d)\d{3}`, regexp2.IgnoreCase)
	intelCoreMatcher   = regexp2.MustCompile(`\bi[3579][\s-]+(1[0-4]|[2-9])\d{3}`, regexp2.IgnoreCase)
)

// Text renders a raw spec value as a string. Objects and arrays are rendered as JSON so substring
// searches still see their contents.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ParseNumber extracts the first number from a raw spec value: 650, "650", "650 W", "1,000W".
func ParseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	s := Text(v)
	if s == "" {
		return 0, false
	}
	s, err := thousandsMatcher.Replace(s, "", -1, -1)
	if err != nil {
		return 0, false
	}
	m, err := numberMatcher.FindStringMatch(s)
	if err != nil || m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseMaxNumber returns the largest number in a raw value, so "DDR4-3200" reads as 3200 rather than 4.
func ParseMaxNumber(v any) (float64, bool) {
	s := Text(v)
	if s == "" {
		return 0, false
	}
	if stripped, err := thousandsMatcher.Replace(s, "", -1, -1); err == nil {
		s = stripped
	}
	best, found := 0.0, false
	for _, text := range Regexp2SearchAllText(unsignedMatcher, s) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		if !found || f > best {
			best, found = f, true
		}
	}
	return best, found
}

// ParseModuleCount reads a memory kit's stick count from values such as 2, "2", "2 x 8GB" or "16GB (2x8GB)".
// Capacities like "16GB" are not counts.
func ParseModuleCount(v any) (int, bool) {
	if s, ok := v.(string); ok {
		if m, err := moduleCountMatcher.FindStringMatch(s); err == nil && m != nil {
			n, err := strconv.Atoi(m.GroupByNumber(1).String())
			return n, err == nil && n > 0
		}
		if !matches(integerMatcher, s) {
			return 0, false
		}
	}
	f, ok := ParseNumber(v)
	if !ok || f < 1 {
		return 0, false
	}
	return int(f), true
}

// NormalizeToken lower-cases s and strips whitespace, hyphens and underscores: "LGA 1700" -> "lga1700".
func NormalizeToken(s string) string {
	out, err := tokenNoise.Replace(strings.ToLower(s), "", -1, -1)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// SplitList splits a delimited value ("ATX, Micro ATX / Mini ITX") into trimmed, non-empty items.
func SplitList(s string) []string {
	parts, err := listSeparator.Replace(s, "\x00", -1, -1)
	if err != nil {
		parts = s
	}
	var out []string
	for _, p := range strings.Split(parts, "\x00") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsFold reports whether needle is a case-insensitive substring of haystack.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// Chipset finds a chipset model ("B450", "Z790") in free text and returns it lower-cased.
func Chipset(s string) string {
	m, err := chipsetMatcher.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}
	return strings.ToLower(m.GroupByNumber(1).String())
}

// RyzenSeries returns the thousands digit of a Ryzen model number: "Ryzen 5 5600X" -> 5.
func RyzenSeries(name string) int {
	m, err := ryzenMatcher.FindStringMatch(name)
	if err != nil || m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m.GroupByNumber(1).String())
	return n
}

// IntelGeneration returns the Core generation of a model name: "Core i5-13600K" -> 13, "i7-9700K" -> 9.
func IntelGeneration(name string) int {
	m, err := intelCoreMatcher.FindStringMatch(name)
	if err != nil || m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m.GroupByNumber(1).String())
	return n
}
