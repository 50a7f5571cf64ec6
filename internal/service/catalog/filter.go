package catalog

import (
	"sort"

	"github.com/travelbook/holidaybooking/internal/domain"
)

// ApplyFilters returns the packages matching every predicate of spec,
// ordered by its sort key. Predicates are conjunctive; empty sets and
// zero bounds pass everything, so the default spec returns the input
// unchanged. Source order is preserved through filtering, the sort is
// stable, and the input slice is never mutated.
func ApplyFilters(pkgs []domain.PackageView, spec domain.FilterSpec) []domain.PackageView {
	var themeSet map[string]struct{}
	if len(spec.Themes) > 0 {
		themeSet = buildSet(spec.Themes)
	}
	var citySet map[string]struct{}
	if len(spec.Cities) > 0 {
		citySet = buildSet(spec.Cities)
	}

	result := make([]domain.PackageView, 0, len(pkgs))
	for _, p := range pkgs {
		if passesAllFilters(p, spec, themeSet, citySet) {
			result = append(result, p)
		}
	}

	sortPackages(result, spec.Sort)
	return result
}

func passesAllFilters(p domain.PackageView, spec domain.FilterSpec, themeSet, citySet map[string]struct{}) bool {
	// Theme filter: any of the package's themes in the selected set.
	// Matching is case-sensitive exact.
	if themeSet != nil && !intersects(p.Themes, themeSet) {
		return false
	}

	// Location filter: the package's city in the selected set.
	if citySet != nil {
		if _, ok := citySet[p.City]; !ok {
			return false
		}
	}

	// Inclusive range containment; a zero bound leaves that side open.
	if spec.MinDurationDays > 0 && p.DurationDays < spec.MinDurationDays {
		return false
	}
	if spec.MaxDurationDays > 0 && p.DurationDays > spec.MaxDurationDays {
		return false
	}
	if spec.MinPriceCents > 0 && p.PriceCents < spec.MinPriceCents {
		return false
	}
	if spec.MaxPriceCents > 0 && p.PriceCents > spec.MaxPriceCents {
		return false
	}

	return true
}

func sortPackages(pkgs []domain.PackageView, key domain.SortKey) {
	switch key {
	case domain.SortDurationAsc:
		sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].DurationDays < pkgs[j].DurationDays })
	case domain.SortDurationDesc:
		sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].DurationDays > pkgs[j].DurationDays })
	case domain.SortPriceAsc:
		sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].PriceCents < pkgs[j].PriceCents })
	case domain.SortPriceDesc:
		sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].PriceCents > pkgs[j].PriceCents })
	}
}

func buildSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
