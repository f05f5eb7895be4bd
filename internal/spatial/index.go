package spatial

import (
	"sync"

	"github.com/dhconnelly/rtreego"
)

// pointExtent gives point markers a tiny footprint so they can live in the
// R-tree, which rejects zero-size rectangles.
const pointExtent = 1e-9

// Marker is one indexed map point.
type Marker struct {
	ID  uint
	Lat float64
	Lon float64
}

// Bounds implements rtreego.Spatial.
func (m Marker) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{m.Lon, m.Lat}, []float64{pointExtent, pointExtent})
	return rect
}

// Index is an in-memory spatial index over map markers. Viewport queries
// are O(log N) against the R-tree instead of scanning the database; the
// index is rebuilt after each import.
type Index struct {
	mu    sync.RWMutex
	rtree *rtreego.Rtree
	count int
}

// NewIndex creates an empty marker index.
func NewIndex() *Index {
	return &Index{rtree: rtreego.NewTree(2, 25, 50)}
}

// Replace swaps the index contents for a fresh marker set.
func (idx *Index) Replace(markers []Marker) {
	tree := rtreego.NewTree(2, 25, 50)
	for _, m := range markers {
		tree.Insert(m)
	}

	idx.mu.Lock()
	idx.rtree = tree
	idx.count = len(markers)
	idx.mu.Unlock()
}

// Insert adds a single marker.
func (idx *Index) Insert(m Marker) {
	idx.mu.Lock()
	idx.rtree.Insert(m)
	idx.count++
	idx.mu.Unlock()
}

// SearchBounds returns the markers inside the given viewport.
func (idx *Index) SearchBounds(minLat, minLon, maxLat, maxLon float64) []Marker {
	if maxLat < minLat || maxLon < minLon {
		return nil
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{maxLon - minLon + pointExtent, maxLat - minLat + pointExtent},
	)
	if err != nil {
		return nil
	}

	idx.mu.RLock()
	spatials := idx.rtree.SearchIntersect(rect)
	idx.mu.RUnlock()

	markers := make([]Marker, 0, len(spatials))
	for _, s := range spatials {
		markers = append(markers, s.(Marker))
	}
	return markers
}

// Count returns the number of indexed markers.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}
