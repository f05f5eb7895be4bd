package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"wingforge/internal/extraction"
	"wingforge/internal/metrics"
	"wingforge/internal/models"
	"wingforge/internal/poi"
	"wingforge/internal/repository"
	"wingforge/internal/spatial"
)

// ImportReport summarizes one CSV import: rows persisted and rows dropped
// by the silent-skip policy.
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// POIService imports and serves map points of interest.
type POIService struct {
	Repo    repository.POIRepository
	Index   *spatial.Index
	Metrics *metrics.Metrics

	HTTPClient *http.Client
	Retries    int
}

// NewPOIService creates a new POIService. The HTTP client timeout bounds
// remote CSV fetches; retries are additional attempts after the first.
func NewPOIService(repo repository.POIRepository, index *spatial.Index, m *metrics.Metrics, timeout time.Duration, retries int) *POIService {
	return &POIService{
		Repo:       repo,
		Index:      index,
		Metrics:    m,
		HTTPClient: &http.Client{Timeout: timeout},
		Retries:    retries,
	}
}

// ImportFromURL fetches a remote CSV and imports its rows. Failed fetches
// are retried with a short backoff before giving up.
func (s *POIService) ImportFromURL(url string) (*ImportReport, error) {
	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
			log.Printf("Retrying CSV fetch (%d/%d): %s", attempt, s.Retries, url)
		}

		text, err := s.fetch(url)
		if err != nil {
			s.Metrics.RecordImportAttempt("failure")
			lastErr = err
			continue
		}
		s.Metrics.RecordImportAttempt("success")
		return s.ImportCSV(text)
	}
	return nil, errors.Wrapf(lastErr, "fetching %s failed after %d attempts", url, s.Retries+1)
}

func (s *POIService) fetch(url string) (string, error) {
	resp, err := s.HTTPClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ImportCSV parses CSV text and persists the valid rows. Malformed rows are
// counted but never abort the import.
func (s *POIService) ImportCSV(text string) (*ImportReport, error) {
	res := poi.ParseCSV(text)

	pois := make([]models.PointOfInterest, 0, len(res.Records))
	for _, r := range res.Records {
		pois = append(pois, models.FromRecord(r))
	}
	if err := s.Repo.CreateBatch(pois); err != nil {
		return nil, errors.Wrap(err, "failed to save imported points")
	}

	if err := s.RebuildIndex(); err != nil {
		log.Printf("Marker index rebuild failed: %v", err)
	}

	s.Metrics.AddImported(len(pois))
	s.Metrics.AddSkipped(res.Skipped)
	return &ImportReport{Imported: len(pois), Skipped: res.Skipped}, nil
}

// ImportFromFiles imports every .csv among the given files; other files are
// ignored. Used for extracted archive uploads.
func (s *POIService) ImportFromFiles(paths []string) (*ImportReport, error) {
	total := &ImportReport{}
	var imported bool

	for _, path := range paths {
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", filepath.Base(path))
		}
		report, err := s.ImportCSV(string(data))
		if err != nil {
			return nil, err
		}
		total.Imported += report.Imported
		total.Skipped += report.Skipped
		imported = true
	}

	if !imported {
		return nil, fmt.Errorf("no csv file found in upload")
	}
	return total, nil
}

// ImportFromArchive extracts an uploaded archive and imports the CSV files
// it contains.
func (s *POIService) ImportFromArchive(archivePath string) (*ImportReport, error) {
	files, destDir, err := extraction.ExtractArchive(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract archive")
	}
	defer os.RemoveAll(destDir)

	return s.ImportFromFiles(files)
}

// RebuildIndex reloads the in-memory marker index from the database.
func (s *POIService) RebuildIndex() error {
	pois, err := s.Repo.List()
	if err != nil {
		return err
	}
	markers := make([]spatial.Marker, 0, len(pois))
	for _, p := range pois {
		markers = append(markers, spatial.Marker{ID: p.ID, Lat: p.Latitude, Lon: p.Longitude})
	}
	s.Index.Replace(markers)
	return nil
}

// Get retrieves a point by ID.
func (s *POIService) Get(id uint) (*models.PointOfInterest, error) {
	return s.Repo.Get(id)
}

// List returns all stored points.
func (s *POIService) List() ([]models.PointOfInterest, error) {
	return s.Repo.List()
}

// Delete removes a point and refreshes the marker index.
func (s *POIService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if err := s.RebuildIndex(); err != nil {
		log.Printf("Marker index rebuild failed: %v", err)
	}
	return nil
}

// WithinRadius returns points within radiusMeters of the given position.
func (s *POIService) WithinRadius(lat, lon, radiusMeters float64) ([]models.PointOfInterest, error) {
	return s.Repo.FindWithinRadius(lat, lon, radiusMeters)
}

// ViewportGeoJSON returns the markers inside a lat/lon viewport as a
// GeoJSON feature collection with rendered popups.
func (s *POIService) ViewportGeoJSON(minLat, minLon, maxLat, maxLon float64) (*poi.FeatureCollection, error) {
	markers := s.Index.SearchBounds(minLat, minLon, maxLat, maxLon)

	features := make([]poi.Feature, 0, len(markers))
	for _, m := range markers {
		p, err := s.Repo.Get(m.ID)
		if err != nil {
			continue // marker dropped between index rebuilds
		}
		features = append(features, poi.NewFeature(p.Record(), p.ID))
	}

	fc := poi.NewFeatureCollection(features)
	return &fc, nil
}

// AllGeoJSON returns every stored point as GeoJSON for the map page.
func (s *POIService) AllGeoJSON() (*poi.FeatureCollection, error) {
	pois, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	features := make([]poi.Feature, 0, len(pois))
	for _, p := range pois {
		features = append(features, poi.NewFeature(p.Record(), p.ID))
	}
	fc := poi.NewFeatureCollection(features)
	return &fc, nil
}
