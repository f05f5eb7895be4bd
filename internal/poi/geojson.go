package poi

// GeoJSON output for the map page. Only point features are emitted; the
// mapping library handles tiles and marker rendering.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   PointGeometry          `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // lon, lat
}

// NewFeature builds a point feature with the rendered popup attached so the
// page can bind it directly to the marker.
func NewFeature(r Record, id interface{}) Feature {
	return Feature{
		Type: "Feature",
		Geometry: PointGeometry{
			Type:        "Point",
			Coordinates: [2]float64{r.Longitude, r.Latitude},
		},
		Properties: map[string]interface{}{
			"id":     id,
			"name":   r.Name,
			"finder": r.Finder,
			"popup":  PopupHTML(r),
		},
	}
}

// NewFeatureCollection wraps features into a FeatureCollection. An empty
// slice still yields a valid collection.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
