package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day stored as YYYY-MM-DD so that equality filters and
// unique indexes compare days, not instants.
type Date string

// ParseDate accepts a plain date or an RFC 3339 timestamp and keeps the
// calendar day in the timestamp's own offset.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return Date(t.Format(DateLayout)), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return Date(t.Format(DateLayout)), nil
	}
	return "", fmt.Errorf("invalid date %q", raw)
}

func (d Date) String() string { return string(d) }
