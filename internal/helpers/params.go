package helpers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseOptionalFloat returns nil when key is absent or blank.
func ParseOptionalFloat(q url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

// ParseOptionalInt returns nil when key is absent or blank.
func ParseOptionalInt(q url.Values, key string) (*int64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// ParseFlag reads a boolean switch: "true" enables it, "false" or absence
// disables it, anything else is rejected.
func ParseFlag(q url.Values, key string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(q.Get(key))) {
	case "true":
		return true, nil
	case "", "false":
		return false, nil
	}
	return false, fmt.Errorf("%s must be true or false", key)
}

// ParseOptionalDate accepts YYYY-MM-DD or RFC 3339. When endOfDay is set a
// date-only value resolves to the last millisecond of that UTC day.
func ParseOptionalDate(q url.Values, key string, endOfDay bool) (*time.Time, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD or an RFC 3339 timestamp", key)
	}
	t = t.UTC()
	return &t, nil
}
