// Package query turns raw, loosely typed request parameters into bounded
// pagination, sort, filter and search specifications. Every function here is
// pure: nothing touches storage and nothing is shared between requests.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Params is the raw query string of a single request, first value per key.
type Params map[string]string

// FromValues flattens url.Values, keeping the first value of each key.
func FromValues(values url.Values) Params {
	p := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}

	return p
}

// Get returns the raw value of key, or "" when absent.
func (p Params) Get(key string) string {
	return p[key]
}

// Has reports whether key was supplied at all, even with an empty value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// First returns the value of the first supplied key in keys.
func (p Params) First(keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != "" {
			return v
		}
	}

	return ""
}

// ParseInt reads a leading integer from s the way lenient clients send them:
// surrounding whitespace is ignored, an optional sign is allowed and parsing
// stops at the first non-digit ("12abc" is 12, "1.9" is 1). ok is false when
// no digit is found.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == start {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: saturate in the direction of the sign.
		if s[0] == '-' {
			return minInt, true
		}
		return maxInt, true
	}

	return v, true
}

// ParseNumber coerces s to a number. Empty or non-numeric input is not ok.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// ToBoolean coerces a flag value. An integer value is true when non-zero;
// anything else is true only when it reads "true" in any case. An absent
// value yields def.
func ToBoolean(s string, def bool) bool {
	if strings.TrimSpace(s) == "" {
		return def
	}

	if n, ok := ParseInt(s); ok {
		return n != 0
	}

	return strings.EqualFold(s, "true")
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
