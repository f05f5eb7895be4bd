package repository

import (
	"gorm.io/gorm"

	"wingforge/internal/models"
	"wingforge/internal/utils"
)

// POIRepository defines database operations for map points of interest.
type POIRepository interface {
	CreateBatch(pois []models.PointOfInterest) error
	Get(id uint) (*models.PointOfInterest, error)
	List() ([]models.PointOfInterest, error)
	Delete(id uint) error
	FindWithinRadius(lat, lon, radiusMeters float64) ([]models.PointOfInterest, error)
}

// POIRepositoryImpl provides methods to interact with the PointOfInterest
// model in the database.
type POIRepositoryImpl struct {
	db *gorm.DB
}

// NewPOIRepository creates a new POIRepositoryImpl with the provided GORM
// database connection.
func NewPOIRepository(db *gorm.DB) *POIRepositoryImpl {
	return &POIRepositoryImpl{db: db}
}

// CreateBatch inserts a set of imported points in one statement.
func (r *POIRepositoryImpl) CreateBatch(pois []models.PointOfInterest) error {
	if len(pois) == 0 {
		return nil
	}
	return r.db.Create(&pois).Error
}

// Get retrieves a point by its ID.
func (r *POIRepositoryImpl) Get(id uint) (*models.PointOfInterest, error) {
	var p models.PointOfInterest
	err := r.db.First(&p, "id = ?", id).Error
	return &p, err
}

// List retrieves all points.
func (r *POIRepositoryImpl) List() ([]models.PointOfInterest, error) {
	var pois []models.PointOfInterest
	err := r.db.Find(&pois).Error
	return pois, err
}

// Delete removes a point by its ID.
func (r *POIRepositoryImpl) Delete(id uint) error {
	return r.db.Delete(&models.PointOfInterest{}, "id = ?", id).Error
}

// FindWithinRadius returns points within radiusMeters of the given position.
// A bounding box narrows the candidate set in SQL, then the exact Haversine
// distance filters the rest.
func (r *POIRepositoryImpl) FindWithinRadius(lat, lon, radiusMeters float64) ([]models.PointOfInterest, error) {
	minLat, maxLat, minLon, maxLon := utils.CalculateBoundingBox(lat, lon, radiusMeters)

	var candidates []models.PointOfInterest
	err := r.db.
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLon, maxLon).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var pois []models.PointOfInterest
	for _, p := range candidates {
		if utils.HaversineDistance(lat, lon, p.Latitude, p.Longitude) <= radiusMeters {
			pois = append(pois, p)
		}
	}
	return pois, nil
}
