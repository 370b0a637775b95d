package domain

import (
	"sort"
	"strconv"
)

// RowID is the identifier a record store assigns to a row.
// It is opaque to the application and only used to target deletions.
type RowID int64

// String formats the id in base 10
func (id RowID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseRowID parses a base 10 row identifier
func ParseRowID(s string) (RowID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: "row", Reason: "must be a positive integer"}
	}
	return RowID(n), nil
}

// DeletionOrder returns the distinct ids sorted in descending order.
// Stores that number rows by position shift every row after a deleted one,
// so deleting from the highest id down leaves the remaining targets valid.
func DeletionOrder(ids []RowID) []RowID {
	seen := make(map[RowID]struct{}, len(ids))
	out := make([]RowID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
