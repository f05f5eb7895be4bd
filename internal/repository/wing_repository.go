package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wingforge/internal/models"
)

// WingRepository defines database operations for generated wing metadata.
type WingRepository interface {
	Create(w *models.WingModel) error
	Get(id uuid.UUID) (*models.WingModel, error)
	List() ([]models.WingModel, error)
	Delete(id uuid.UUID) error
}

// WingRepositoryImpl provides methods to interact with the WingModel in the
// database.
type WingRepositoryImpl struct {
	db *gorm.DB
}

// NewWingRepository creates a new WingRepositoryImpl with the provided GORM
// database connection.
func NewWingRepository(db *gorm.DB) *WingRepositoryImpl {
	return &WingRepositoryImpl{db: db}
}

// Create stores a new wing metadata record.
func (r *WingRepositoryImpl) Create(w *models.WingModel) error {
	return r.db.Create(w).Error
}

// Get retrieves a wing record by its ID.
func (r *WingRepositoryImpl) Get(id uuid.UUID) (*models.WingModel, error) {
	var w models.WingModel
	err := r.db.First(&w, "id = ?", id).Error
	return &w, err
}

// List retrieves all wing records.
func (r *WingRepositoryImpl) List() ([]models.WingModel, error) {
	var wings []models.WingModel
	err := r.db.Find(&wings).Error
	return wings, err
}

// Delete removes a wing record by its ID.
func (r *WingRepositoryImpl) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.WingModel{}, "id = ?", id).Error
}
