package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wingforge/internal/metrics"
	"wingforge/internal/models"
	"wingforge/internal/spatial"
)

// testMetrics is shared across tests; promauto metrics register globally
// and must only be created once per binary.
var testMetrics = metrics.NewMetrics()

// fakePOIRepo is an in-memory POIRepository for service tests.
type fakePOIRepo struct {
	pois   map[uint]models.PointOfInterest
	nextID uint
}

func newFakePOIRepo() *fakePOIRepo {
	return &fakePOIRepo{pois: make(map[uint]models.PointOfInterest), nextID: 1}
}

func (r *fakePOIRepo) CreateBatch(pois []models.PointOfInterest) error {
	for _, p := range pois {
		p.ID = r.nextID
		r.nextID++
		r.pois[p.ID] = p
	}
	return nil
}

func (r *fakePOIRepo) Get(id uint) (*models.PointOfInterest, error) {
	p, ok := r.pois[id]
	if !ok {
		return nil, fmt.Errorf("poi %d not found", id)
	}
	return &p, nil
}

func (r *fakePOIRepo) List() ([]models.PointOfInterest, error) {
	var out []models.PointOfInterest
	for _, p := range r.pois {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePOIRepo) Delete(id uint) error {
	delete(r.pois, id)
	return nil
}

func (r *fakePOIRepo) FindWithinRadius(lat, lon, radiusMeters float64) ([]models.PointOfInterest, error) {
	return nil, nil
}

func newTestPOIService(retries int) (*POIService, *fakePOIRepo) {
	repo := newFakePOIRepo()
	return NewPOIService(repo, spatial.NewIndex(), testMetrics, 2*time.Second, retries), repo
}

const sampleCSV = "h1;h2;h3;h4;h5;h6;h7\n47.1;8.2;Spot A;Alice;1.5m;Nice view;https://x/a.jpg\nshort;row\n46.9;7.4;Spot B;Bob;3m;;"

func TestImportCSV(t *testing.T) {
	svc, repo := newTestPOIService(0)

	report, err := svc.ImportCSV(sampleCSV)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Errorf("report = %+v, expected 2 imported / 1 skipped", report)
	}
	if len(repo.pois) != 2 {
		t.Errorf("repo holds %d pois, expected 2", len(repo.pois))
	}
	if svc.Index.Count() != 2 {
		t.Errorf("index holds %d markers, expected 2", svc.Index.Count())
	}
}

func TestImportFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleCSV)
	}))
	defer ts.Close()

	svc, _ := newTestPOIService(0)
	report, err := svc.ImportFromURL(ts.URL)
	if err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}
	if report.Imported != 2 {
		t.Errorf("imported = %d, expected 2", report.Imported)
	}
}

func TestImportFromURLRetries(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, sampleCSV)
	}))
	defer ts.Close()

	svc, _ := newTestPOIService(2)
	report, err := svc.ImportFromURL(ts.URL)
	if err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}
	if calls != 3 {
		t.Errorf("fetch attempts = %d, expected 3", calls)
	}
	if report.Imported != 2 {
		t.Errorf("imported = %d, expected 2", report.Imported)
	}
}

func TestImportFromURLGivesUp(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	svc, _ := newTestPOIService(1)
	if _, err := svc.ImportFromURL(ts.URL); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestImportFromFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "spots.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	otherPath := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(otherPath, []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, _ := newTestPOIService(0)
	report, err := svc.ImportFromFiles([]string{csvPath, otherPath})
	if err != nil {
		t.Fatalf("ImportFromFiles: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Errorf("report = %+v, expected 2 imported / 1 skipped", report)
	}
}

func TestImportFromFilesNoCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, _ := newTestPOIService(0)
	if _, err := svc.ImportFromFiles([]string{path}); err == nil {
		t.Fatal("expected error when upload contains no csv")
	}
}

func TestViewportGeoJSON(t *testing.T) {
	svc, _ := newTestPOIService(0)
	if _, err := svc.ImportCSV(sampleCSV); err != nil {
		t.Fatal(err)
	}

	fc, err := svc.ViewportGeoJSON(47, 8, 48, 9)
	if err != nil {
		t.Fatalf("ViewportGeoJSON: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("features = %d, expected 1 (only Spot A in viewport)", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "Spot A" {
		t.Errorf("feature name = %v", fc.Features[0].Properties["name"])
	}
}

func TestDeleteRefreshesIndex(t *testing.T) {
	svc, repo := newTestPOIService(0)
	if _, err := svc.ImportCSV(sampleCSV); err != nil {
		t.Fatal(err)
	}

	var id uint
	for k := range repo.pois {
		id = k
		break
	}
	if err := svc.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if svc.Index.Count() != 1 {
		t.Errorf("index count = %d after delete, expected 1", svc.Index.Count())
	}
}
