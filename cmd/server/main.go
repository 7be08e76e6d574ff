package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/arif404/devconnector/backend/internal/router"
	"github.com/arif404/devconnector/backend/pkg/config"
	"github.com/arif404/devconnector/backend/pkg/firebase"
	"github.com/arif404/devconnector/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase sign-in is optional; without credentials only local JWT auth is offered
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
