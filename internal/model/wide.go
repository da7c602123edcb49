package model

// NeighborhoodWideRow is one row of the merged neighborhood table: polygon
// identity left-joined with every theme's metrics. Mobility columns are
// always present because the mobility builder emits a row per polygon; the
// other themes may be missing and surface as blank cells.
type NeighborhoodWideRow struct {
	DistrictID     string  `csv:"district_id"`
	District       string  `csv:"district"`
	NeighborhoodID string  `csv:"neighborhood_id"`
	Neighborhood   string  `csv:"neighborhood"`
	AreaKm2        float64 `csv:"area_km2"`

	UBahnStations       int      `csv:"ubahn_stations"`
	BusTramStops        int      `csv:"bus_tram_stops"`
	TotalStops          int      `csv:"total_stops"`
	ConnectivityDensity float64  `csv:"connectivity_density"`
	MobilityScore       *float64 `csv:"mobility_score"`
	MobilityLabel       string   `csv:"mobility_label"`

	GreenAreaKm2    *float64 `csv:"green_area_km2"`
	GreenShare      *float64 `csv:"green_share"`
	GreenShareLabel *string  `csv:"green_share_label"`

	Playgrounds       *int     `csv:"n_playgrounds"`
	PlaygroundsPerKm2 *float64 `csv:"playgrounds_per_km2"`
	PlaygroundsLabel  *string  `csv:"playgrounds_density_label"`

	Venues        *int     `csv:"n_venues"`
	CuisineTypes  *int     `csv:"n_cuisine_types"`
	VenuesPerKm2  *float64 `csv:"venues_per_km2"`
	VScore        *float64 `csv:"V_score"`
	CScore        *float64 `csv:"C_score"`
	VVIndex       *float64 `csv:"VV_index"`
	VibrancyLabel *string  `csv:"vibrancy_label"`
}

// NeighborhoodMinimalRow is the venue-free wide table: identity plus
// mobility, parks, and playgrounds.
type NeighborhoodMinimalRow struct {
	DistrictID     string  `csv:"district_id"`
	District       string  `csv:"district"`
	NeighborhoodID string  `csv:"neighborhood_id"`
	Neighborhood   string  `csv:"neighborhood"`
	AreaKm2        float64 `csv:"area_km2"`

	UBahnStations       int      `csv:"ubahn_stations"`
	BusTramStops        int      `csv:"bus_tram_stops"`
	TotalStops          int      `csv:"total_stops"`
	ConnectivityDensity float64  `csv:"connectivity_density"`
	MobilityScore       *float64 `csv:"mobility_score"`
	MobilityLabel       string   `csv:"mobility_label"`

	GreenAreaKm2    *float64 `csv:"green_area_km2"`
	GreenShare      *float64 `csv:"green_share"`
	GreenShareLabel *string  `csv:"green_share_label"`

	Playgrounds       *int     `csv:"n_playgrounds"`
	PlaygroundsPerKm2 *float64 `csv:"playgrounds_per_km2"`
	PlaygroundsLabel  *string  `csv:"playgrounds_density_label"`
}

// DistrictWideRow is one row of the merged district table, including the
// optional socioeconomic columns passed through from a district stats table.
type DistrictWideRow struct {
	DistrictID string  `csv:"district_id"`
	District   string  `csv:"district"`
	AreaKm2    float64 `csv:"area_km2"`

	UBahnStations       *int     `csv:"ubahn_stations"`
	BusTramStops        *int     `csv:"bus_tram_stops"`
	TotalStops          *int     `csv:"total_stops"`
	ConnectivityDensity *float64 `csv:"connectivity_density"`
	MobilityScore       *float64 `csv:"mobility_score"`
	MobilityLabel       *string  `csv:"mobility_label"`

	GreenAreaKm2    *float64 `csv:"green_area_km2"`
	GreenShare      *float64 `csv:"green_share"`
	GreenShareLabel *string  `csv:"green_share_label"`

	Playgrounds       *int     `csv:"n_playgrounds"`
	PlaygroundsPerKm2 *float64 `csv:"playgrounds_per_km2"`
	PlaygroundsLabel  *string  `csv:"playgrounds_density_label"`

	Venues        *int     `csv:"n_venues"`
	CuisineTypes  *int     `csv:"n_cuisine_types"`
	VenuesPerKm2  *float64 `csv:"venues_per_km2"`
	VScore        *float64 `csv:"V_score"`
	CScore        *float64 `csv:"C_score"`
	VVIndex       *float64 `csv:"VV_index"`
	VibrancyLabel *string  `csv:"vibrancy_label"`

	IncomeEUR         *float64 `csv:"income_value_eur"`
	CrimesPer1000     *float64 `csv:"crimes_per_1000"`
	UnemployedPer1000 *float64 `csv:"unemployment_per_1000"`
	DensityPerKm2     *float64 `csv:"density_per_km2"`
	DiversityShare    *float64 `csv:"diversity_share"`
}

// DistrictStats carries optional district-level socioeconomic indicators
// merged onto the district wide table when a stats file is supplied.
type DistrictStats struct {
	DistrictID        string   `csv:"district_id"`
	IncomeEUR         *float64 `csv:"income_value_eur"`
	CrimesPer1000     *float64 `csv:"crimes_per_1000"`
	UnemployedPer1000 *float64 `csv:"unemployment_per_1000"`
	DensityPerKm2     *float64 `csv:"density_per_km2"`
	DiversityShare    *float64 `csv:"diversity_share"`
}
