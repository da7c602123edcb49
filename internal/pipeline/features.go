package pipeline

import (
	"strings"
)

// Feature describes one weightable metric: its stable identifier, the
// ordered column candidates that can back it, and its polarity. Invert
// marks lower-is-better metrics whose values are negated before percentile
// scoring.
type Feature struct {
	ID          string
	Columns     []string
	Invert      bool
	Description string
}

// Catalog is the fixed feature registry consumed by the suitability
// computation. Column fallbacks are ordered: the first present column wins.
var Catalog = []Feature{
	{
		ID:          "vibrancy",
		Columns:     []string{"VV_index", "venues_per_km2"},
		Description: "Combined venue density and variety; higher = more lively.",
	},
	{
		ID:          "mobility",
		Columns:     []string{"mobility_score", "connectivity_density"},
		Description: "Public transport accessibility (U-Bahn + bus/tram); higher = better connected.",
	},
	{
		ID:          "playgrounds",
		Columns:     []string{"playgrounds_per_km2"},
		Description: "Playgrounds per km2; higher = more playground access.",
	},
	{
		ID:          "green_share",
		Columns:     []string{"green_share"},
		Description: "Parks and forest as a share of area; higher = greener.",
	},
	{
		ID:          "income",
		Columns:     []string{"income_value_eur"},
		Description: "Median income of residents; higher = more affluent.",
	},
	{
		ID:          "safety",
		Columns:     []string{"crimes_per_1000"},
		Invert:      true,
		Description: "Crimes per 1,000 residents; lower = safer.",
	},
	{
		ID:          "unemployment",
		Columns:     []string{"unemployment_per_1000"},
		Invert:      true,
		Description: "Unemployed per 1,000 residents; lower = better employment.",
	},
	{
		ID:          "density",
		Columns:     []string{"density_per_km2"},
		Description: "Residents per km2; higher = more urban/compact.",
	},
	{
		ID:          "diversity",
		Columns:     []string{"diversity_share"},
		Description: "Share of residents with migrant background; higher = more diverse.",
	},
}

// FeatureSet is the capability record for one loaded table: which features
// are available and the column backing each. It is computed once at load
// time; downstream code queries it instead of re-deriving column presence.
type FeatureSet map[string]string

// AvailableFeatures resolves the catalog against a table's columns.
func AvailableFeatures(columns []string) FeatureSet {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	fs := make(FeatureSet)
	for _, f := range Catalog {
		for _, col := range f.Columns {
			if _, ok := present[strings.ToLower(col)]; ok {
				fs[f.ID] = col
				break
			}
		}
	}
	return fs
}

// IDs lists the available feature identifiers in catalog order.
func (fs FeatureSet) IDs() []string {
	var ids []string
	for _, f := range Catalog {
		if _, ok := fs[f.ID]; ok {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// featureByID returns the catalog entry for id.
func featureByID(id string) (Feature, bool) {
	for _, f := range Catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}
