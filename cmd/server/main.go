package main

import (
	"log"
	"time"

	"wingforge/internal/config"
	"wingforge/internal/handlers"
	"wingforge/internal/metrics"
	"wingforge/internal/models"
	"wingforge/internal/repository"
	"wingforge/internal/services"
	"wingforge/internal/spatial"
	"wingforge/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const artifactCacheSize = 256 << 20 // 256 MiB
const artifactCacheTTL = 30 * time.Minute

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	m := metrics.NewMetrics()
	cache := services.NewArtifactCache(artifactCacheSize, artifactCacheTTL)
	markerIndex := spatial.NewIndex()

	wingRepo := repository.NewWingRepository(db)
	wingService := services.NewWingService(wingRepo, minioClient, cfg.MinioBucket, cache, m, cfg.PreviewSize)

	poiRepo := repository.NewPOIRepository(db)
	poiService := services.NewPOIService(poiRepo, markerIndex, m,
		time.Duration(cfg.ImportTimeoutSeconds)*time.Second, cfg.ImportRetries)

	// Warm the marker index from whatever survived the last run.
	if err := poiService.RebuildIndex(); err != nil {
		log.Printf("Initial marker index build failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 64 << 20, // archives of CSVs can get large
	})

	//Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	wh := handlers.NewWingHandler(wingService)
	ph := handlers.NewPOIHandler(poiService)

	api := app.Group("/api")

	// Wing generation and artifact routes
	api.Post("/wings", wh.GenerateWing)
	api.Get("/wings", wh.ListWings)
	api.Get("/wings/:id", wh.GetWing)
	api.Delete("/wings/:id", wh.DeleteWing)
	api.Get("/wings/:id/download", wh.DownloadWing)
	api.Get("/wings/:id/preview", wh.PreviewWing)

	// POI import and map routes
	api.Post("/pois/import", ph.ImportFromURL)
	api.Post("/pois/upload", ph.UploadCSV)
	api.Get("/pois", ph.ListPOIs)
	api.Get("/pois/within", ph.WithinRadius)
	api.Get("/pois/geojson", ph.GeoJSON)
	api.Get("/pois/:id", ph.GetPOI)
	api.Get("/pois/:id/popup", ph.PopupPOI)
	api.Delete("/pois/:id", ph.DeletePOI)

	app.Get("/map", handlers.MapPage)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.WingModel{}, &models.PointOfInterest{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
