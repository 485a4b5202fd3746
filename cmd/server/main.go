package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/todotitans/todoapp/internal/handlers"
	"github.com/todotitans/todoapp/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT environment variable is required")
	}

	apiKey := os.Getenv("FIREBASE_API_KEY")
	if apiKey == "" {
		log.Fatal("FIREBASE_API_KEY environment variable is required")
	}

	ctx := context.Background()

	firestoreService, err := services.NewFirestoreService(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create Firestore service: %v", err)
	}
	defer firestoreService.Close()

	sessionPath := os.Getenv("SESSION_FILE")
	if sessionPath == "" {
		sessionPath = services.DefaultSessionPath()
	}

	session, err := services.NewFirebaseSession(ctx, apiKey, sessionPath)
	if err != nil {
		log.Fatalf("Failed to create identity service: %v", err)
	}

	app := handlers.NewApp(session, firestoreService, firestoreService)
	apiHandler := handlers.NewAPIHandler(app)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	apiHandler.Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
