package core

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var errUnknownOrdering = errors.New("unknown ordering field")

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

// ParseOrderings parses "field,-field" into orderings ("-" means descending).
func ParseOrderings(s string) []Ordering {
	var ords []Ordering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ords = append(ords, Ordering{Field: field, Ascending: !descending})
	}
	return ords
}

// Comparator returns a negative number when a < b, zero when equal and a positive number when a > b.
type Comparator[T any] func(a, b T) int

// SortSlice stable-sorts items by the orderings, using fields to look up each ordering's comparator.
// An unknown field is a validation error and leaves items untouched.
func SortSlice[T any](items []T, ords []Ordering, fields map[string]Comparator[T]) error {
	if len(ords) == 0 {
		return nil
	}
	cmps := make([]Comparator[T], len(ords))
	for i, ord := range ords {
		cmp, ok := fields[ord.Field]
		if !ok {
			return NewValidationError(nil, FieldError{Field: "ordering", Error: errUnknownOrdering.Error() + ": " + ord.Field})
		}
		cmps[i] = cmp
	}
	sort.SliceStable(items, func(i, j int) bool {
		for k, cmp := range cmps {
			c := cmp(items[i], items[j])
			if c == 0 {
				continue
			}
			if ords[k].Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return nil
}

func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareNumbers[N ~int | ~int64 | ~float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareBools orders true before false.
func CompareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}
