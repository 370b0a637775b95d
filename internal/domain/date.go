package domain

import "time"

var sortLayouts = []string{DateLayout, time.RFC3339, "2006/01/02", "2006.01.02"}

// DateSortKey parses a stored date for ordering purposes.
// Dates that match no known layout sort as the earliest possible time.
func DateSortKey(date string) time.Time {
	for _, layout := range sortLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}
