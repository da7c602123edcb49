// Package theme builds per-neighborhood metric tables for the four themes:
// mobility, parks, playgrounds, and venues. Builders are pure with respect
// to their inputs: raw tables and the polygon set in, metric rows out.
package theme

import (
	"sort"

	"github.com/annap-test/Berlin-App/internal/model"
)

// neighborhoodIndex resolves raw-record identities to polygon entities.
// Key strategies are evaluated in a fixed precedence order: the full
// (district_id, canonical name) key first, then the canonical name alone for
// records whose district column disagrees with or lacks the polygon's.
type neighborhoodIndex struct {
	full  map[string]*model.Neighborhood
	canon map[string]*model.Neighborhood
}

func indexNeighborhoods(neighborhoods []model.Neighborhood) *neighborhoodIndex {
	idx := &neighborhoodIndex{
		full:  make(map[string]*model.Neighborhood, len(neighborhoods)),
		canon: make(map[string]*model.Neighborhood, len(neighborhoods)),
	}
	for i := range neighborhoods {
		n := &neighborhoods[i]
		idx.full[joinKey(n.DistrictID, n.Canon)] = n
		if _, dup := idx.canon[n.Canon]; !dup {
			idx.canon[n.Canon] = n
		}
	}
	return idx
}

func (idx *neighborhoodIndex) lookup(districtID, canon string) (*model.Neighborhood, bool) {
	if n, ok := idx.full[joinKey(districtID, canon)]; ok {
		return n, true
	}
	n, ok := idx.canon[canon]
	return n, ok
}

func joinKey(districtID, canon string) string {
	return districtID + "\x1f" + canon
}

// groupKey orders grouped rows deterministically, matching a sorted
// group-by on (district_id, canonical name).
type groupKey struct {
	DistrictID string
	Canon      string
}

func sortedKeys(m map[groupKey]struct{}) []groupKey {
	keys := make([]groupKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DistrictID != keys[j].DistrictID {
			return keys[i].DistrictID < keys[j].DistrictID
		}
		return keys[i].Canon < keys[j].Canon
	})
	return keys
}
