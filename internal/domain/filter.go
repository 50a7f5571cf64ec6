package domain

type SortKey string

const (
	SortNone         SortKey = "none"
	SortDurationAsc  SortKey = "durationAsc"
	SortDurationDesc SortKey = "durationDesc"
	SortPriceAsc     SortKey = "priceAsc"
	SortPriceDesc    SortKey = "priceDesc"
)

// FilterSpec selects the visible subset and order of the catalog.
// Empty sets pass everything; a zero bound leaves that side of the
// range open. Predicates are conjunctive. Ephemeral, never stored.
type FilterSpec struct {
	Themes          []string
	Cities          []string
	MinDurationDays int
	MaxDurationDays int
	MinPriceCents   int64
	MaxPriceCents   int64
	Sort            SortKey
}

// DefaultFilterSpec passes every package and preserves source order.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{Sort: SortNone}
}

func ValidSortKey(k SortKey) bool {
	switch k {
	case SortNone, SortDurationAsc, SortDurationDesc, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}
