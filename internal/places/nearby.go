package places

import (
	"sort"
	"sync"

	"github.com/tidwall/rtree"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/utils"
)

// RecentIndex is an in-memory spatial index over resolved places. It backs
// the "nearby recent places" suggestions so a traveler editing a plan gets
// candidates without another provider round trip.
type RecentIndex struct {
	mu   sync.RWMutex
	tree rtree.RTreeG[models.Place]
	ids  map[string]models.Place
}

// NewRecentIndex returns an empty index.
func NewRecentIndex() *RecentIndex {
	return &RecentIndex{ids: make(map[string]models.Place)}
}

// Insert adds a place to the index. Re-inserting an ID replaces its
// previous entry.
func (idx *RecentIndex) Insert(place models.Place) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if prev, ok := idx.ids[place.ID]; ok {
		point := [2]float64{prev.Location.Lon, prev.Location.Lat}
		idx.tree.Delete(point, point, prev)
	}

	point := [2]float64{place.Location.Lon, place.Location.Lat}
	idx.tree.Insert(point, point, place)
	idx.ids[place.ID] = place
}

// Len returns the number of indexed places.
func (idx *RecentIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}

// Nearby returns up to limit places within radiusMeters of center, closest
// first.
func (idx *RecentIndex) Nearby(center models.Coordinate, radiusMeters float64, limit int) []models.Place {
	if limit <= 0 || radiusMeters <= 0 {
		return nil
	}

	bounds := utils.CalculateBounds(center.Lat, center.Lon, radiusMeters)

	type hit struct {
		place  models.Place
		meters float64
	}
	var hits []hit

	idx.mu.RLock()
	idx.tree.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(min, max [2]float64, place models.Place) bool {
			d := utils.Distance(center.Lat, center.Lon, place.Location.Lat, place.Location.Lon)
			if d <= radiusMeters {
				hits = append(hits, hit{place: place, meters: d})
			}
			return true
		},
	)
	idx.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool { return hits[i].meters < hits[j].meters })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]models.Place, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.place)
	}
	return out
}
