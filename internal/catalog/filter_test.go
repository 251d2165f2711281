package catalog_test

import (
	"testing"

	"artisan/internal/catalog"
	"artisan/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSelect_SortKeysOverFullCatalog(t *testing.T) {
	tests := []struct {
		key  models.SortKey
		want []string
	}{
		{models.SortFeatured, []string{"3", "5", "1", "2", "4", "6"}},
		{models.SortPriceLow, []string{"1", "2", "6", "5", "3", "4"}},
		{models.SortPriceHigh, []string{"4", "3", "5", "6", "2", "1"}},
		{models.SortRating, []string{"3", "2", "5", "1", "4", "6"}},
		{models.SortNewest, []string{"6", "5", "4", "3", "2", "1"}},
		{models.SortKey("bogus"), []string{"3", "5", "1", "2", "4", "6"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := catalog.Select(catalog.Products(), models.FilterSpec{}, tt.key)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_Constraints(t *testing.T) {
	tests := []struct {
		name string
		spec models.FilterSpec
		want []string
	}{
		{"search name or artisan", models.FilterSpec{Search: "GLASS"}, []string{"6"}},
		{"search tags and description", models.FilterSpec{Search: "handcrafted"}, []string{"5", "2"}},
		{"category", models.FilterSpec{Category: "Ceramics"}, []string{"1"}},
		{"category sentinel", models.FilterSpec{Category: models.AllCategories}, []string{"3", "5", "1", "2", "4", "6"}},
		{"inclusive price range", models.FilterSpec{PriceRange: &models.PriceRange{Min: 125, Max: 195}}, []string{"3", "5", "6"}},
		{"materials are OR-matched", models.FilterSpec{Materials: []string{"wool", "SILVER"}}, []string{"3", "5"}},
		{"material substring", models.FilterSpec{Materials: []string{"Clay"}}, []string{"1"}},
		{"featured only", models.FilterSpec{Featured: true}, []string{"3", "5", "1"}},
		{"in stock only", models.FilterSpec{InStock: true}, []string{"3", "5", "1", "2", "4", "6"}},
		{"constraints are AND-ed", models.FilterSpec{Search: "handcrafted", Featured: true}, []string{"5"}},
		{"no match", models.FilterSpec{Category: "Metalwork"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Select(catalog.Products(), tt.spec, models.SortFeatured)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_CategoryPropertyHolds(t *testing.T) {
	products := catalog.Products()
	for _, c := range catalog.Categories[1:] {
		for _, p := range catalog.Select(products, models.FilterSpec{Category: c}, models.SortRating) {
			assert.Equal(t, c, p.Category)
		}
	}
}

func TestSelect_IsPureAndIdempotent(t *testing.T) {
	products := catalog.Products()
	before := ids(products)
	spec := models.FilterSpec{PriceRange: &models.PriceRange{Min: 0, Max: 200}}

	first := catalog.Select(products, spec, models.SortPriceHigh)
	second := catalog.Select(products, spec, models.SortPriceHigh)

	assert.Equal(t, first, second)
	assert.Equal(t, before, ids(products), "input order must not change")
}

func TestSort_FeaturedThenRating(t *testing.T) {
	products := []models.Product{
		{ID: "A", Featured: true, Rating: 4.0},
		{ID: "B", Featured: false, Rating: 5.0},
		{ID: "C", Featured: true, Rating: 4.5},
	}
	got := catalog.Select(products, models.FilterSpec{}, models.SortFeatured)
	assert.Equal(t, []string{"C", "A", "B"}, ids(got))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, models.SortPriceLow, catalog.ParseSortKey("price-low"))
	assert.Equal(t, models.SortNewest, catalog.ParseSortKey("newest"))
	assert.Equal(t, models.SortFeatured, catalog.ParseSortKey(""))
	assert.Equal(t, models.SortFeatured, catalog.ParseSortKey("cheapest"))
}

func TestFeatured(t *testing.T) {
	products := catalog.Products()
	assert.Equal(t, []string{"1", "3", "5"}, ids(catalog.Featured(products, 4)))
	assert.Equal(t, []string{"1", "3"}, ids(catalog.Featured(products, 2)))
	assert.Equal(t, []string{"1", "3", "5"}, ids(catalog.Featured(products, 0)))
}
