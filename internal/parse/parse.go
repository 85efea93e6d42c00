// Package parse holds the pure text-extraction helpers probes feed raw
// command output and pseudo-file contents through. Every function tolerates
// malformed or missing input and returns a zero result instead of failing.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var firstInt = regexp.MustCompile(`(\d+)`)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// KBToGB converts a kilobyte count to gigabytes with two decimal places.
// Invalid input yields 0.0.
func KBToGB(kb string) float64 {
	v, err := strconv.ParseInt(strings.TrimSpace(kb), 10, 64)
	if err != nil {
		return 0.0
	}
	return KBIntToGB(v)
}

// KBIntToGB is KBToGB for an already-parsed value.
func KBIntToGB(kb int64) float64 {
	return round2(float64(kb) / (1024 * 1024))
}

// BytesToGB converts a byte count to gigabytes with two decimal places.
// Invalid input yields 0.0.
func BytesToGB(b string) float64 {
	v, err := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if err != nil {
		return 0.0
	}
	return round2(float64(v) / (1024 * 1024 * 1024))
}

// KHzToMHz converts a kilohertz reading to megahertz, truncating rather than
// rounding.
func KHzToMHz(khz string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(khz), 10, 64)
	if err != nil {
		return 0, false
	}
	return v / 1000, true
}

// SplitKeyValue splits a "key<sep>value" line, trimming both halves.
func SplitKeyValue(line, sep string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, sep)
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

// NumericKeyValues extracts the first integer from every "key: value" line,
// the shape of /proc/meminfo. Lines without a colon or a number are skipped.
func NumericKeyValues(text string) map[string]int64 {
	out := make(map[string]int64)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := SplitKeyValue(line, ":")
		if !ok {
			continue
		}
		m := firstInt.FindString(value)
		if m == "" {
			continue
		}
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}

// FirstSubmatch returns the first capture group of the pattern's first match.
func FirstSubmatch(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// TitleLabel derives a display label from a stable field identifier:
// underscores become spaces and each word is title-cased.
func TitleLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
