// Command devbackend runs an in-memory stand-in for the Olea store REST API.
// It exists so the console can be developed and demoed without the real
// backend: it issues JWT credential pairs, enforces the admin role, and
// serves paginated users, products, and orders under /api.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/oleastore/go-admin-console/internal/config"
	"github.com/oleastore/go-admin-console/internal/devbackend"
	"github.com/rs/zerolog"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname("Olea Dev Backend")
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	data := devbackend.NewDataset()
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@olea.store")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "olea-dev-admin")
	if _, err := data.SeedAdmin(adminEmail, adminPassword); err != nil {
		return fmt.Errorf("data.SeedAdmin: %w", err)
	}
	log.Printf("Seeded admin account %s\n", adminEmail)

	backend := devbackend.New(config.Tokens{}, data, logger)
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", backend))

	httpServer := &http.Server{Addr: ":" + config.GetEnv("BACKEND_PORT", "8000"), Handler: mux}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
