package utils

import "time"

// ISODateFormat is the canonical date layout used across the pipeline.
const ISODateFormat = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(dateStr string) (time.Time, error) {
	return time.Parse(ISODateFormat, dateStr)
}
