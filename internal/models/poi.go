package models

import (
	"strings"
	"time"

	"wingforge/internal/poi"
)

// PointOfInterest is one imported map spot. ImageLinks keeps the original
// comma-separated form so re-export round-trips the source CSV.
type PointOfInterest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Latitude      float64   `gorm:"index" json:"latitude"`
	Longitude     float64   `gorm:"index" json:"longitude"`
	Name          string    `json:"name"`
	Finder        string    `json:"finder"`
	HeightToWater string    `json:"height_to_water"`
	Note          string    `json:"note"`
	ImageLinks    string    `json:"image_links"`
	ImportedAt    time.Time `json:"imported_at"`
}

// FromRecord converts a parsed CSV record into a persistable row.
func FromRecord(r poi.Record) PointOfInterest {
	return PointOfInterest{
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Name:          r.Name,
		Finder:        r.Finder,
		HeightToWater: r.HeightToWater,
		Note:          r.Note,
		ImageLinks:    strings.Join(r.ImageLinks, ","),
		ImportedAt:    time.Now(),
	}
}

// Record converts the row back into the parser's record form for popup and
// GeoJSON rendering.
func (p PointOfInterest) Record() poi.Record {
	var links []string
	if p.ImageLinks != "" {
		for _, l := range strings.Split(p.ImageLinks, ",") {
			if l = strings.TrimSpace(l); l != "" {
				links = append(links, l)
			}
		}
	}
	return poi.Record{
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Name:          p.Name,
		Finder:        p.Finder,
		HeightToWater: p.HeightToWater,
		Note:          p.Note,
		ImageLinks:    links,
	}
}
