package main

import (
	"log"
	"time"

	"rental_erp/internal/config"
	"rental_erp/internal/database"
	"rental_erp/internal/handlers"
	"rental_erp/internal/redis"
	"rental_erp/internal/repository"
	"rental_erp/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if cfg.SeedDemoData {
		if err := database.Seed(db); err != nil {
			log.Fatal("Failed to seed database:", err)
		}
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.AvailabilityCacheTTL)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, customerRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	customerService := services.NewCustomerService(customerRepo, userRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	locationService := services.NewLocationService(locationRepo)
	reservationService := services.NewReservationService(reservationRepo, customerRepo, vehicleRepo, locationRepo, redisClient)
	financialService := services.NewFinancialService(financialRepo, reservationRepo, customerRepo)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, vehicleRepo)

	// Setup routes
	router := handlers.NewRouter(cfg, authService, handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Customer:    handlers.NewCustomerHandler(customerService, reservationService, financialService),
		Vehicle:     handlers.NewVehicleHandler(vehicleService),
		Location:    handlers.NewLocationHandler(locationService),
		Reservation: handlers.NewReservationHandler(reservationService),
		Financial:   handlers.NewFinancialHandler(financialService),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceService),
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
