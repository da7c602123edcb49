// Package model defines the domain records and metric-table rows that flow
// through the pipeline. Optional cells in output rows are pointer-valued so
// missing data serializes as a blank cell, never as "NaN" or an IEEE Inf.
package model

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Neighborhood is a polygon entity with its canonical identity and derived
// areas. Canon, AreaKm2, and AreaEffKm2 are attached by the pipeline after
// loading.
type Neighborhood struct {
	DistrictID     string
	District       string
	NeighborhoodID string
	Name           string
	Canon          string
	Geom           *geom.MultiPolygon
	AreaKm2        float64
	AreaEffKm2     float64
}

// District is a polygon entity produced by dissolving the neighborhoods that
// share a district identity.
type District struct {
	DistrictID string
	District   string
	Geom       *geom.MultiPolygon
	AreaKm2    float64
	AreaEffKm2 float64
}

// Opt converts a possibly-NaN float into a nullable cell.
func Opt(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// OptVal converts a nullable cell back to a NaN-encoded float.
func OptVal(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
