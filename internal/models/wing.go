package models

import (
	"time"

	"github.com/google/uuid"
)

// WingModel is the metadata of a generated wing solid stored in object
// storage. ParamsJSON keeps the full generation request for reproducibility.
type WingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `json:"name"`
	Format       string    `json:"format"` // "step" or "stl"
	ParamsJSON   string    `json:"params_json"`
	SectionCount int       `json:"section_count"`
	VertexCount  int       `json:"vertex_count"`
	FaceCount    int       `json:"face_count"`
	TipCapFused  bool      `json:"tip_cap_fused"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	StorageKey   string    `json:"storage_key"`
	PreviewKey   string    `json:"preview_key"`
	CreatedAt    time.Time `json:"created_at"`
}
