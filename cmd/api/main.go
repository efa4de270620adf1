package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"livestock-pens/internal/platform/logger"
	"livestock-pens/internal/router"
)

// @title Livestock Pens API
// @version 1.0
// @description Funciones de pen, assignments y sincronización de toros para el dashboard ganadero.
// @BasePath /
func main() {
	// .env opcional; en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: nil, // sin verifier para modo dev
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
