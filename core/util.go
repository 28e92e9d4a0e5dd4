package core

import (
	"sort"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Ordering is one sort key requested by a client, eg. `-name`.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// ParseOrderings parses a comma separated list of fields, where a leading "-" means descending.
func ParseOrderings(val string) []Ordering {
	var orderings []Ordering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: field, Ascending: !descending})
	}
	return orderings
}

// SortBy stable sorts n items by orderings.
// compare returns -1, 0 or 1 comparing items i and j on field; unknown fields must return 0.
func SortBy(n int, swap func(i, j int), compare func(field string, i, j int) int, orderings []Ordering) {
	if len(orderings) == 0 {
		return
	}
	sort.Stable(multiSorter{n: n, swap: swap, compare: compare, orderings: orderings})
}

type multiSorter struct {
	n         int
	swap      func(i, j int)
	compare   func(field string, i, j int) int
	orderings []Ordering
}

func (ms multiSorter) Len() int      { return ms.n }
func (ms multiSorter) Swap(i, j int) { ms.swap(i, j) }

func (ms multiSorter) Less(i, j int) bool {
	for _, ord := range ms.orderings {
		c := ms.compare(ord.Field, i, j)
		if c == 0 {
			continue
		}
		if ord.Ascending {
			return c < 0
		}
		return c > 0
	}
	return false
}
