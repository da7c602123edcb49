package model

// MobilityRow holds per-neighborhood transit connectivity metrics.
// Every declared neighborhood gets a row; unassigned neighborhoods count 0.
type MobilityRow struct {
	DistrictID          string   `csv:"district_id"`
	NeighborhoodID      string   `csv:"neighborhood_id"`
	Neighborhood        string   `csv:"neighborhood"`
	Canon               string   `csv:"neighborhood_canon"`
	UBahnStations       int      `csv:"ubahn_stations"`
	BusTramStops        int      `csv:"bus_tram_stops"`
	TotalStops          int      `csv:"total_stops"`
	ConnectivityDensity float64  `csv:"connectivity_density"`
	MobilityScore       *float64 `csv:"mobility_score"`
	MobilityLabel       string   `csv:"mobility_label"`
}

// ParksRow holds per-neighborhood green area metrics. GreenShare divides by
// the true area, not the floored effective area, and is nil when the
// neighborhood is unknown to the polygon set or has zero area.
type ParksRow struct {
	DistrictID      string   `csv:"district_id"`
	Canon           string   `csv:"neighborhood_canon"`
	GreenAreaKm2    float64  `csv:"green_area_km2"`
	AreaKm2         *float64 `csv:"area_km2"`
	GreenShare      *float64 `csv:"green_share"`
	GreenShareLabel string   `csv:"green_share_label"`
}

// PlaygroundsRow holds per-neighborhood playground density metrics.
type PlaygroundsRow struct {
	DistrictID        string   `csv:"district_id"`
	Canon             string   `csv:"neighborhood_canon"`
	Playgrounds       int      `csv:"n_playgrounds"`
	AreaEffKm2        *float64 `csv:"area_eff_km2"`
	PlaygroundsPerKm2 *float64 `csv:"playgrounds_per_km2"`
	DensityLabel      string   `csv:"playgrounds_density_label"`
}

// VenuesFeatureRow holds per-neighborhood venue counts and national cuisine
// diversity before density scoring.
type VenuesFeatureRow struct {
	DistrictID   string `csv:"district_id"`
	Canon        string `csv:"neighborhood_canon"`
	Venues       int    `csv:"n_venues"`
	CuisineTypes int    `csv:"n_cuisine_types"`
}

// VibrancyRow extends venue features with density-based scores. The
// eligibility flag is tracked but does not gate the label.
type VibrancyRow struct {
	DistrictID       string   `csv:"district_id"`
	Canon            string   `csv:"neighborhood_canon"`
	Venues           int      `csv:"n_venues"`
	CuisineTypes     int      `csv:"n_cuisine_types"`
	AreaEffKm2       *float64 `csv:"area_eff_km2"`
	VenuesPerKm2     *float64 `csv:"venues_per_km2"`
	VScore           *float64 `csv:"V_score"`
	CScore           *float64 `csv:"C_score"`
	VVIndex          *float64 `csv:"VV_index"`
	VibrancyEligible bool     `csv:"vibrancy_eligible"`
	VibrancyLabel    string   `csv:"vibrancy_label"`
}

// DistrictMobilityRow holds district-level mobility metrics recomputed from
// district-summed counts and areas, not averaged neighborhood scores.
type DistrictMobilityRow struct {
	DistrictID          string   `csv:"district_id"`
	District            string   `csv:"district"`
	UBahnStations       int      `csv:"ubahn_stations"`
	BusTramStops        int      `csv:"bus_tram_stops"`
	TotalStops          int      `csv:"total_stops"`
	AreaEffKm2          float64  `csv:"area_eff_km2"`
	ConnectivityDensity float64  `csv:"connectivity_density"`
	MobilityScore       *float64 `csv:"mobility_score"`
	MobilityLabel       string   `csv:"mobility_label"`
}

// DistrictParksRow holds district-level green share metrics.
type DistrictParksRow struct {
	DistrictID      string   `csv:"district_id"`
	District        string   `csv:"district"`
	GreenAreaKm2    float64  `csv:"green_area_km2"`
	AreaKm2         float64  `csv:"area_km2"`
	GreenShare      *float64 `csv:"green_share"`
	GreenShareLabel string   `csv:"green_share_label"`
}

// DistrictPlaygroundsRow holds district-level playground density metrics.
type DistrictPlaygroundsRow struct {
	DistrictID        string   `csv:"district_id"`
	District          string   `csv:"district"`
	Playgrounds       int      `csv:"n_playgrounds"`
	AreaEffKm2        float64  `csv:"area_eff_km2"`
	PlaygroundsPerKm2 *float64 `csv:"playgrounds_per_km2"`
	DensityLabel      string   `csv:"playgrounds_density_label"`
}

// DistrictVibrancyRow holds district-level venue vibrancy metrics computed
// from district-grouped raw venues.
type DistrictVibrancyRow struct {
	DistrictID    string   `csv:"district_id"`
	District      string   `csv:"district"`
	Venues        int      `csv:"n_venues"`
	CuisineTypes  int      `csv:"n_cuisine_types"`
	AreaEffKm2    float64  `csv:"area_eff_km2"`
	VenuesPerKm2  *float64 `csv:"venues_per_km2"`
	VScore        *float64 `csv:"V_score"`
	CScore        *float64 `csv:"C_score"`
	VVIndex       *float64 `csv:"VV_index"`
	VibrancyLabel string   `csv:"vibrancy_label"`
}
