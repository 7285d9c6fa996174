package main

import (
	"log"

	"wayfinder/internal/api"
	"wayfinder/internal/config"
	"wayfinder/internal/database"
	"wayfinder/internal/handler"
	"wayfinder/internal/repository"
	"wayfinder/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	locationRepo := repository.NewLocationRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	home := service.HomeFilter{
		Latitude:  cfg.HomeLatitude,
		Longitude: cfg.HomeLongitude,
		Radius:    cfg.HomeRadiusMeters,
	}

	handlers := api.Handlers{
		Trips:    handler.NewTripHandler(service.NewTripService(locationRepo, visitRepo)),
		Visits:   handler.NewVisitHandler(service.NewVisitService(visitRepo, home)),
		Activity: handler.NewActivityHandler(service.NewActivityService(activityRepo)),
		Ingest:   handler.NewIngestHandler(service.NewIngestService(locationRepo, visitRepo)),
	}

	router := api.SetupRouter(cfg, handlers)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
