package geo

import (
	"sort"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/model"
)

// DissolveByDistrict merges neighborhoods sharing a district identity into
// district polygons. Districts assume disjoint member geometries, so the
// union is the multipolygon collection of the members and the district area
// is the sum of member areas. floorKm2 is re-applied to the summed area.
func DissolveByDistrict(neighborhoods []model.Neighborhood, floorKm2 float64) []model.District {
	byID := make(map[string]*model.District)
	var order []string

	for i := range neighborhoods {
		n := &neighborhoods[i]
		d, ok := byID[n.DistrictID]
		if !ok {
			d = &model.District{
				DistrictID: n.DistrictID,
				District:   n.District,
				Geom:       geom.NewMultiPolygon(geom.XY).SetSRID(4326),
			}
			byID[n.DistrictID] = d
			order = append(order, n.DistrictID)
		}
		if n.Geom != nil {
			for j := 0; j < n.Geom.NumPolygons(); j++ {
				// Clone flattens to XY so 3D inputs still join the district
				// geometry; the whole pipeline is planar.
				if err := d.Geom.Push(clonePolygonXY(n.Geom.Polygon(j))); err != nil {
					zap.L().Warn("geo: dropping member polygon from district geometry",
						zap.String("district_id", n.DistrictID),
						zap.String("neighborhood", n.Name),
						zap.Error(err))
				}
			}
		}
		d.AreaKm2 += n.AreaKm2
	}

	sort.Strings(order)
	out := make([]model.District, 0, len(order))
	for _, id := range order {
		d := byID[id]
		d.AreaEffKm2 = EffectiveAreaKm2(d.AreaKm2, floorKm2)
		out = append(out, *d)
	}
	return out
}

// clonePolygonXY copies a polygon's rings, keeping only the X and Y of each
// vertex.
func clonePolygonXY(p *geom.Polygon) *geom.Polygon {
	stride := p.Layout().Stride()
	out := geom.NewPolygon(geom.XY)
	for i := 0; i < p.NumLinearRings(); i++ {
		src := p.LinearRing(i).FlatCoords()
		flat := make([]float64, 0, 2*(len(src)/stride))
		for j := 0; j+1 < len(src); j += stride {
			flat = append(flat, src[j], src[j+1])
		}
		_ = out.Push(geom.NewLinearRingFlat(geom.XY, flat))
	}
	return out
}
