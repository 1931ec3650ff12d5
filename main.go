package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskflow/taskflow-be/internal/api"
	"github.com/taskflow/taskflow-be/internal/auth"
	"github.com/taskflow/taskflow-be/internal/config"
	"github.com/taskflow/taskflow-be/internal/database"
	"github.com/taskflow/taskflow-be/internal/logger"
	"github.com/taskflow/taskflow-be/internal/monitoring"
	"github.com/taskflow/taskflow-be/internal/services"
	"github.com/taskflow/taskflow-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	auth.Init(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up WebSocket hub for live notification push
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)
	taskService := services.NewTaskService(db, eventService, hub)
	categoryService := services.NewCategoryService(db, eventService)
	notificationService := services.NewNotificationService(db)

	// Set up and run the background overdue-task scanner
	scanner, err := monitoring.NewOverdueScanner(taskService, eventService, hub, cfg.OverdueSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize overdue scanner: %v", err)
	}
	go scanner.Run()

	// Set up router
	router := api.NewRouter(hub, userService, taskService, categoryService, notificationService, eventService, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	scanner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
