package store

import (
	"strings"

	"larder/internal/catalog"
)

// SortOrder selects the ordering of list results.
type SortOrder string

const (
	// SortInsertion orders rows by when they were created.
	SortInsertion SortOrder = "insertion"
	SortName      SortOrder = "name"
	SortID        SortOrder = "id"
)

// ParseSort resolves a user-supplied sort name. Empty means insertion order.
func ParseSort(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortInsertion:
		return SortInsertion, nil
	case SortName:
		return SortName, nil
	case SortID:
		return SortID, nil
	default:
		return "", catalog.Invalid("sort", "unsupported value %q (use insertion, name, or id)", value)
	}
}

func (o SortOrder) orderBy() string {
	switch o {
	case SortName:
		return "name COLLATE NOCASE, position"
	case SortID:
		return "id"
	default:
		return "position, id"
	}
}

// ListOptions filters and orders recipe listings.
type ListOptions struct {
	// NameContains keeps rows whose name contains the text, ignoring case
	// and accents.
	NameContains string
	Sort         SortOrder
}

// ItemListOptions filters and orders grocery item listings.
type ItemListOptions struct {
	ListOptions
	// Acquired, when set, keeps only items with the given state.
	Acquired *bool
	Section  string
}
