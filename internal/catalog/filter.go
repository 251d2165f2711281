// Package catalog holds the static product data and the pure filter and
// sort routine used for browsing it.
package catalog

import (
	"sort"
	"strings"

	"artisan/internal/models"
)

// Select returns the products matching every constraint in spec, ordered by
// key. The input slice is never modified.
func Select(products []models.Product, spec models.FilterSpec, key models.SortKey) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, spec) {
			out = append(out, p)
		}
	}
	Sort(out, key)
	return out
}

// Matches reports whether p passes every constraint of spec.
func Matches(p models.Product, spec models.FilterSpec) bool {
	if spec.Search != "" && !matchesSearch(p, strings.ToLower(spec.Search)) {
		return false
	}
	if spec.Category != "" && spec.Category != models.AllCategories && p.Category != spec.Category {
		return false
	}
	if r := spec.PriceRange; r != nil && (p.Price < r.Min || p.Price > r.Max) {
		return false
	}
	if len(spec.Materials) > 0 && !matchesAnyMaterial(p, spec.Materials) {
		return false
	}
	if spec.InStock && !p.InStock {
		return false
	}
	if spec.Featured && !p.Featured {
		return false
	}
	return true
}

func matchesSearch(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Artisan.Name), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// matchesAnyMaterial is OR within the category: one requested substring
// found in one product material is enough.
func matchesAnyMaterial(p models.Product, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, m := range p.Materials {
			if strings.Contains(strings.ToLower(m), w) {
				return true
			}
		}
	}
	return false
}

// Sort orders products in place. Unknown keys sort as SortFeatured.
func Sort(products []models.Product, key models.SortKey) {
	var less func(a, b models.Product) bool
	switch key {
	case models.SortPriceLow:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case models.SortPriceHigh:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case models.SortRating:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	case models.SortNewest:
		// Id order stands in for creation order.
		less = func(a, b models.Product) bool { return a.ID > b.ID }
	default:
		less = func(a, b models.Product) bool {
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.Rating > b.Rating
		}
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// ParseSortKey maps user input onto a SortKey, defaulting to featured.
func ParseSortKey(s string) models.SortKey {
	switch k := models.SortKey(s); k {
	case models.SortPriceLow, models.SortPriceHigh, models.SortRating, models.SortNewest:
		return k
	}
	return models.SortFeatured
}

// Featured returns up to limit featured products in catalog order. A
// non-positive limit returns all of them.
func Featured(products []models.Product, limit int) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
