package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	_ "wingforge/internal/models"
	"wingforge/internal/services"
)

const InvalidUuidError = "invalid UUID"
const WingNotFoundError = "wing not found"

// WingHandler defines handlers for managing generated wing models.
type WingHandler struct {
	Service *services.WingService
}

// NewWingHandler creates a new WingHandler with the given WingService.
func NewWingHandler(service *services.WingService) *WingHandler {
	return &WingHandler{Service: service}
}

// GenerateWing handles POST /wings to generate a new wing solid.
// @Summary Generate a wing solid
// @Description Builds a gull wing from the given parameters, exports it to STEP or STL and stores the artifact. Omitted parameters fall back to the classic gull wing defaults.
// @Tags wings
// @Accept json
// @Produce json
// @Param request body services.WingRequest true "Generation request"
// @Success 201 {object} models.WingModel "Wing successfully generated"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings [post]
func (h *WingHandler) GenerateWing(c *fiber.Ctx) error {
	log.Printf("Generating wing - Method: %s, Path: %s, IP: %s", c.Method(), c.Path(), c.IP())

	var req services.WingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Failed to parse generation request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "failed to parse request body: " + err.Error(),
		})
	}

	w, err := h.Service.Generate(req)
	if err != nil {
		log.Printf("Wing generation failed: %v", err)
		status := fiber.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "invalid wing parameters") || strings.Contains(msg, "unsupported export format") {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": msg,
		})
	}

	log.Printf("Successfully generated wing: ID=%s, Format=%s, Faces=%d, TipCapFused=%t",
		w.ID, w.Format, w.FaceCount, w.TipCapFused)
	return c.Status(fiber.StatusCreated).JSON(w)
}

// ListWings handles GET /wings to retrieve all stored wing metadata.
// @Summary List all wings
// @Description Gets the metadata of every generated wing
// @Tags wings
// @Accept json
// @Produce json
// @Success 200 {array} models.WingModel "List of all wings"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings [get]
func (h *WingHandler) ListWings(c *fiber.Ctx) error {
	wings, err := h.Service.List()
	if err != nil {
		log.Printf("Error listing wings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Successfully listed %d wings", len(wings))
	return c.JSON(wings)
}

// GetWing handles GET /wings/:id to retrieve a single wing's metadata.
// @Summary Get a wing by ID
// @Description Get metadata of a specific generated wing
// @Tags wings
// @Accept json
// @Produce json
// @Param id path string true "Wing ID"
// @Success 200 {object} models.WingModel "Wing found"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Wing not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings/{id} [get]
func (h *WingHandler) GetWing(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Getting wing - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	wingID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid UUID format: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	w, err := h.Service.Get(wingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Wing not found: ID=%s", wingID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": WingNotFoundError,
			})
		}
		log.Printf("Error fetching wing: ID=%s, Error=%v", wingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	log.Printf("Successfully retrieved wing: ID=%s, Name=%s", wingID, w.Name)
	return c.JSON(w)
}

// DownloadWing handles GET /wings/:id/download to stream the exported solid.
// @Summary Download a wing artifact
// @Description Download the STEP or STL file for a generated wing
// @Tags wings
// @Accept json
// @Produce application/octet-stream
// @Param id path string true "Wing ID"
// @Success 200 {file} binary "Exported solid"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Wing not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings/{id}/download [get]
func (h *WingHandler) DownloadWing(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Downloading wing - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	wingID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid UUID format for download: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	w, err := h.Service.Get(wingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Wing not found for download: ID=%s", wingID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": WingNotFoundError,
			})
		}
		log.Printf("Error fetching wing for download: ID=%s, Error=%v", wingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	startTime := time.Now()
	data, source, err := h.Service.Download(w)
	if err != nil {
		log.Printf("Failed to retrieve artifact: StorageKey=%s, Error=%v", w.StorageKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "unable to retrieve file",
		})
	}

	latency := time.Since(startTime).Milliseconds()
	log.Printf("Successfully retrieved artifact: ID=%s, Size=%d bytes, Source=%s, Latency=%dms",
		w.ID, len(data), source, latency)
	h.Service.Metrics.RecordDownloadLatency(latency)

	c.Set(fiber.HeaderContentType, w.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+w.Name+"."+w.Format+"\"")
	c.Set("X-Download-Source", source)
	c.Set("X-Download-Latency-Ms", strconv.FormatInt(latency, 10))

	return c.Status(fiber.StatusOK).Send(data)
}

// PreviewWing handles GET /wings/:id/preview to serve the rendered preview image.
// @Summary Get a wing preview image
// @Description Serve the WebP planform preview rendered during generation
// @Tags wings
// @Accept json
// @Produce image/webp
// @Param id path string true "Wing ID"
// @Success 200 {file} binary "WebP preview"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Wing or preview not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings/{id}/preview [get]
func (h *WingHandler) PreviewWing(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Serving wing preview - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	wingID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid UUID format for preview: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	w, err := h.Service.Get(wingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Wing not found for preview: ID=%s", wingID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": WingNotFoundError,
			})
		}
		log.Printf("Error fetching wing for preview: ID=%s, Error=%v", wingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	data, err := h.Service.Preview(w)
	if err != nil {
		log.Printf("Preview not available: ID=%s, Error=%v", wingID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "preview not available",
		})
	}

	c.Set(fiber.HeaderContentType, "image/webp")
	return c.Status(fiber.StatusOK).Send(data)
}

// DeleteWing handles DELETE /wings/:id to remove a wing and its artifacts.
// @Summary Delete a wing
// @Description Delete a generated wing by ID (removes the stored artifact, the preview and the metadata record)
// @Tags wings
// @Accept json
// @Produce json
// @Param id path string true "Wing ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Wing not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /wings/{id} [delete]
func (h *WingHandler) DeleteWing(c *fiber.Ctx) error {
	idStr := c.Params("id")
	log.Printf("Deleting wing - ID: %s, Method: %s, Path: %s, IP: %s", idStr, c.Method(), c.Path(), c.IP())

	wingID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid UUID format for delete: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	if err := h.Service.Delete(wingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Wing not found for delete: ID=%s", wingID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": WingNotFoundError,
			})
		}
		log.Printf("Error deleting wing: ID=%s, Error=%v", wingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	log.Printf("Successfully deleted wing: ID=%s", wingID)
	return c.SendStatus(fiber.StatusNoContent)
}
