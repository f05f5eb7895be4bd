package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"wingforge/internal/export"
	"wingforge/internal/metrics"
	"wingforge/internal/models"
	"wingforge/internal/preview"
	"wingforge/internal/repository"
	"wingforge/internal/wing"
)

// WingRequest is the generation request accepted by the API. Zero-valued
// geometry fields fall back to the classic gull wing defaults.
type WingRequest struct {
	Name   string      `json:"name"`
	Format string      `json:"format"` // "step" (default) or "stl"
	Params wing.Params `json:"params"`
}

// WingService generates wing solids, exports them and manages their stored
// artifacts.
type WingService struct {
	Repo        repository.WingRepository
	Minio       *minio.Client
	BucketName  string
	Cache       *ArtifactCache
	Metrics     *metrics.Metrics
	PreviewSize int
}

// NewWingService creates a new WingService with the given repository,
// storage client and cache.
func NewWingService(repo repository.WingRepository, minioClient *minio.Client, bucketName string, cache *ArtifactCache, m *metrics.Metrics, previewSize int) *WingService {
	return &WingService{
		Repo:        repo,
		Minio:       minioClient,
		BucketName:  bucketName,
		Cache:       cache,
		Metrics:     m,
		PreviewSize: previewSize,
	}
}

func contentTypeFor(format string) string {
	if format == "stl" {
		return "model/stl"
	}
	return "application/step"
}

// Generate builds the solid from the request, exports it to the requested
// format, uploads artifact and preview, and persists the metadata record.
func (s *WingService) Generate(req WingRequest) (*models.WingModel, error) {
	start := time.Now()

	p := req.Params
	if p == (wing.Params{}) {
		p = wing.DefaultParams()
	}
	format := req.Format
	if format == "" {
		format = "step"
	}
	if format != "step" && format != "stl" {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	name := req.Name
	if name == "" {
		name = "gull_wing"
	}

	sections, err := wing.BuildSections(p)
	if err != nil {
		return nil, errors.Wrap(err, "invalid wing parameters")
	}

	mesh, err := wing.Loft(sections)
	if err != nil {
		// Degenerate geometry is fatal, no partial artifact.
		return nil, errors.Wrap(err, "loft failed")
	}

	// Tip rounding is best effort: a failure is reported in the record
	// and metrics but never aborts the export.
	tipCapFused := false
	if p.TipCap {
		if err := wing.FuseTipCap(mesh, wing.TipTrailingPosition(sections), wing.TipCapRadius(p)); err != nil {
			log.Printf("Tip cap fusion skipped: %v", err)
			s.Metrics.RecordTipCapFailure()
		} else {
			tipCapFused = true
		}
	}

	var artifact bytes.Buffer
	switch format {
	case "stl":
		err = export.WriteSTL(&artifact, mesh, name)
	default:
		err = export.WriteSTEP(&artifact, mesh, name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "export failed")
	}

	modelID := uuid.New()
	objectKey := modelID.String() + "." + format
	contentType := contentTypeFor(format)

	_, err = s.Minio.PutObject(
		context.Background(),
		s.BucketName,
		objectKey,
		bytes.NewReader(artifact.Bytes()),
		int64(artifact.Len()),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload artifact to MinIO")
	}

	// Preview upload is decoration; log and continue on failure.
	previewKey := modelID.String() + ".webp"
	if err := s.uploadPreview(previewKey, sections); err != nil {
		log.Printf("Preview upload failed for %s: %v", modelID, err)
		previewKey = ""
	}

	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize parameters")
	}

	w := &models.WingModel{
		ID:           modelID,
		Name:         name,
		Format:       format,
		ParamsJSON:   string(paramsJSON),
		SectionCount: len(sections),
		VertexCount:  len(mesh.Vertices),
		FaceCount:    len(mesh.Faces),
		TipCapFused:  tipCapFused,
		Size:         int64(artifact.Len()),
		ContentType:  contentType,
		StorageKey:   objectKey,
		PreviewKey:   previewKey,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(w); err != nil {
		// If DB save fails, remove the artifact to avoid an orphan file.
		s.Minio.RemoveObject(context.Background(), s.BucketName, objectKey, minio.RemoveObjectOptions{})
		if previewKey != "" {
			s.Minio.RemoveObject(context.Background(), s.BucketName, previewKey, minio.RemoveObjectOptions{})
		}
		return nil, errors.Wrap(err, "failed to save metadata to database")
	}

	s.Cache.Put(objectKey, artifact.Bytes())
	s.Metrics.RecordGeneration(format, time.Since(start).Milliseconds())
	return w, nil
}

func (s *WingService) uploadPreview(key string, sections []wing.Section) error {
	var buf bytes.Buffer
	if err := preview.EncodeWebP(&buf, preview.Render(sections, s.PreviewSize)); err != nil {
		return err
	}
	_, err := s.Minio.PutObject(
		context.Background(),
		s.BucketName,
		key,
		bytes.NewReader(buf.Bytes()),
		int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "image/webp"},
	)
	return err
}

// Get retrieves a wing's metadata by ID.
func (s *WingService) Get(id uuid.UUID) (*models.WingModel, error) {
	return s.Repo.Get(id)
}

// List returns all stored wing metadata.
func (s *WingService) List() ([]models.WingModel, error) {
	return s.Repo.List()
}

// Download returns the artifact bytes for a wing, preferring the in-memory
// cache over object storage. The second return reports the source.
func (s *WingService) Download(w *models.WingModel) ([]byte, string, error) {
	if data := s.Cache.Get(w.StorageKey); data != nil {
		s.Metrics.RecordCacheHit()
		return data, "cache", nil
	}
	s.Metrics.RecordCacheMiss()

	data, err := s.fetchObject(w.StorageKey)
	if err != nil {
		return nil, "", errors.Wrap(err, "unable to retrieve artifact")
	}
	s.Cache.Put(w.StorageKey, data)
	return data, "minio", nil
}

// Preview returns the webp preview bytes for a wing.
func (s *WingService) Preview(w *models.WingModel) ([]byte, error) {
	if w.PreviewKey == "" {
		return nil, fmt.Errorf("no preview stored for %s", w.ID)
	}
	return s.fetchObject(w.PreviewKey)
}

func (s *WingService) fetchObject(key string) ([]byte, error) {
	obj, err := s.Minio.GetObject(context.Background(), s.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// Delete removes a wing's artifacts and its metadata record.
func (s *WingService) Delete(id uuid.UUID) error {
	w, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	_ = s.Minio.RemoveObject(context.Background(), s.BucketName, w.StorageKey, minio.RemoveObjectOptions{})
	if w.PreviewKey != "" {
		_ = s.Minio.RemoveObject(context.Background(), s.BucketName, w.PreviewKey, minio.RemoveObjectOptions{})
	}
	s.Cache.Invalidate(w.StorageKey)
	return s.Repo.Delete(id)
}
