package handlers

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	_ "wingforge/internal/models"
	"wingforge/internal/poi"
	"wingforge/internal/services"
)

const PoiNotFoundError = "point of interest not found"
const InvalidPoiIdError = "invalid point ID"

// POIHandler defines handlers for importing and serving map points of interest.
type POIHandler struct {
	Service *services.POIService
}

// NewPOIHandler creates a new POIHandler with the given POIService.
func NewPOIHandler(service *services.POIService) *POIHandler {
	return &POIHandler{Service: service}
}

// ImportFromURL handles POST /pois/import to fetch and import a remote CSV.
// @Summary Import points from a remote CSV
// @Description Fetches a semicolon-delimited CSV from the given URL and imports its rows. Malformed rows are skipped and counted.
// @Tags pois
// @Accept json
// @Produce json
// @Param url query string true "CSV source URL"
// @Success 200 {object} services.ImportReport "Import summary"
// @Failure 400 {object} map[string]interface{} "Missing URL"
// @Failure 502 {object} map[string]interface{} "Fetch failed"
// @Router /pois/import [post]
func (h *POIHandler) ImportFromURL(c *fiber.Ctx) error {
	url := c.Query("url")
	log.Printf("Importing POI CSV - URL: %s, Method: %s, Path: %s, IP: %s", url, c.Method(), c.Path(), c.IP())

	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "query parameter 'url' is required",
		})
	}

	report, err := h.Service.ImportFromURL(url)
	if err != nil {
		log.Printf("CSV import failed: URL=%s, Error=%v", url, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	log.Printf("Successfully imported CSV: URL=%s, Imported=%d, Skipped=%d", url, report.Imported, report.Skipped)
	return c.JSON(report)
}

// UploadCSV handles POST /pois/upload to import an uploaded CSV or archive.
// @Summary Upload a CSV or archive of CSVs
// @Description Upload a single .csv file or an archive (.zip, .tar.gz) containing CSV files and import the rows
// @Tags pois
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file or archive"
// @Success 200 {object} services.ImportReport "Import summary"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pois/upload [post]
func (h *POIHandler) UploadCSV(c *fiber.Ctx) error {
	log.Printf("Uploading POI file - Method: %s, Path: %s, IP: %s", c.Method(), c.Path(), c.IP())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Printf("Failed to read file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "failed to read file: " + err.Error(),
		})
	}
	log.Printf("Processing POI upload: %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	tmpFile, err := os.CreateTemp("", "poi-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		log.Printf("Failed to create temp file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "failed to store upload",
		})
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		log.Printf("Failed to save upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "failed to store upload",
		})
	}

	var report *services.ImportReport
	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		data, err := os.ReadFile(tmpPath)
		if err != nil {
			log.Printf("Failed to read upload: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": "failed to read upload",
			})
		}
		report, err = h.Service.ImportCSV(string(data))
		if err != nil {
			log.Printf("CSV import failed: File=%s, Error=%v", fileHeader.Filename, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
	} else {
		report, err = h.Service.ImportFromArchive(tmpPath)
		if err != nil {
			log.Printf("Archive import failed: File=%s, Error=%v", fileHeader.Filename, err)
			status := fiber.StatusInternalServerError
			if strings.Contains(err.Error(), "no csv file found") {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
	}

	log.Printf("Successfully imported upload: File=%s, Imported=%d, Skipped=%d",
		fileHeader.Filename, report.Imported, report.Skipped)
	return c.JSON(report)
}

// ListPOIs handles GET /pois to retrieve all stored points.
// @Summary List all points of interest
// @Description Gets all imported points of interest
// @Tags pois
// @Accept json
// @Produce json
// @Success 200 {array} models.PointOfInterest "List of all points"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pois [get]
func (h *POIHandler) ListPOIs(c *fiber.Ctx) error {
	pois, err := h.Service.List()
	if err != nil {
		log.Printf("Error listing points: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Successfully listed %d points", len(pois))
	return c.JSON(pois)
}

// GetPOI handles GET /pois/:id to retrieve a single point.
// @Summary Get a point of interest by ID
// @Description Get details of a specific point of interest
// @Tags pois
// @Accept json
// @Produce json
// @Param id path int true "Point ID"
// @Success 200 {object} models.PointOfInterest "Point found"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Point not found"
// @Router /pois/{id} [get]
func (h *POIHandler) GetPOI(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Getting point - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Printf("Invalid point ID: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidPoiIdError,
		})
	}

	p, err := h.Service.Get(uint(id))
	if err != nil {
		log.Printf("Point not found: ID=%d", id)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": PoiNotFoundError,
		})
	}
	return c.JSON(p)
}

// DeletePOI handles DELETE /pois/:id to remove a point.
// @Summary Delete a point of interest
// @Description Delete a point of interest by ID and refresh the marker index
// @Tags pois
// @Accept json
// @Produce json
// @Param id path int true "Point ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pois/{id} [delete]
func (h *POIHandler) DeletePOI(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Deleting point - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Printf("Invalid point ID for delete: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidPoiIdError,
		})
	}

	if err := h.Service.Delete(uint(id)); err != nil {
		log.Printf("Error deleting point: ID=%d, Error=%v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	log.Printf("Successfully deleted point: ID=%d", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// PopupPOI handles GET /pois/:id/popup to serve a point's popup fragment.
// @Summary Get a point's popup HTML
// @Description Returns the rendered popup HTML fragment for a point of interest
// @Tags pois
// @Produce html
// @Param id path int true "Point ID"
// @Success 200 {string} string "Popup HTML"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Point not found"
// @Router /pois/{id}/popup [get]
func (h *POIHandler) PopupPOI(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Printf("Invalid point ID for popup: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidPoiIdError,
		})
	}

	p, err := h.Service.Get(uint(id))
	if err != nil {
		log.Printf("Point not found for popup: ID=%d", id)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": PoiNotFoundError,
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(poi.PopupHTML(p.Record()))
}

// WithinRadius handles GET /pois/within to find points within a radius.
// @Summary Find points near a position
// @Description Returns all points within the given radius (meters) of a lat/lon position
// @Tags pois
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Search radius in meters (default 1000)"
// @Success 200 {array} models.PointOfInterest "Points within radius"
// @Failure 400 {object} map[string]interface{} "Invalid coordinates"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pois/within [get]
func (h *POIHandler) WithinRadius(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "query parameters 'lat' and 'lon' are required",
		})
	}
	radius := 1000.0
	if radiusStr := c.Query("radius"); radiusStr != "" {
		if r, err := strconv.ParseFloat(radiusStr, 64); err == nil && r > 0 {
			radius = r
		}
	}

	pois, err := h.Service.WithinRadius(lat, lon, radius)
	if err != nil {
		log.Printf("Nearby search failed: lat=%f, lon=%f, radius=%f, Error=%v", lat, lon, radius, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Nearby search: lat=%f, lon=%f, radius=%.0fm, Hits=%d", lat, lon, radius, len(pois))
	return c.JSON(pois)
}

// GeoJSON handles GET /pois/geojson to serve markers for the map page.
// Without viewport parameters the full collection is returned; with
// minLat/minLon/maxLat/maxLon only the markers inside the viewport.
// @Summary Get points as GeoJSON
// @Description Returns points as a GeoJSON FeatureCollection with rendered popup HTML. Pass minLat, minLon, maxLat and maxLon to restrict to a viewport.
// @Tags pois
// @Accept json
// @Produce json
// @Param minLat query number false "Viewport south edge"
// @Param minLon query number false "Viewport west edge"
// @Param maxLat query number false "Viewport north edge"
// @Param maxLon query number false "Viewport east edge"
// @Success 200 {object} poi.FeatureCollection "GeoJSON feature collection"
// @Failure 400 {object} map[string]interface{} "Malformed viewport"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pois/geojson [get]
func (h *POIHandler) GeoJSON(c *fiber.Ctx) error {
	keys := []string{"minLat", "minLon", "maxLat", "maxLon"}

	var present int
	for _, key := range keys {
		if c.Query(key) != "" {
			present++
		}
	}
	if present == 0 {
		fc, err := h.Service.AllGeoJSON()
		if err != nil {
			log.Printf("GeoJSON export failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.JSON(fc)
	}
	if present != len(keys) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "viewport requires minLat, minLon, maxLat and maxLon",
		})
	}

	coords := make([]float64, len(keys))
	for i, key := range keys {
		v, err := strconv.ParseFloat(c.Query(key), 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "malformed viewport parameter: " + key,
			})
		}
		coords[i] = v
	}

	fc, err := h.Service.ViewportGeoJSON(coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		log.Printf("Viewport GeoJSON failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Viewport GeoJSON: [%g,%g]x[%g,%g], Features=%d",
		coords[0], coords[1], coords[2], coords[3], len(fc.Features))
	return c.JSON(fc)
}
