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
	"github.com/oleastore/go-admin-console/apiclient"
	"github.com/oleastore/go-admin-console/internal/config"
	"github.com/oleastore/go-admin-console/server"
	"github.com/oleastore/go-admin-console/session"
	"github.com/oleastore/go-admin-console/tokenstore"
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

	c := config.New()
	displayAppname(c.GetAppName())
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	persistentStore := tokenstore.NewFileStore(c.GetDataFolder(), logger)
	sessionManager, err := session.NewManager(persistentStore, tokenstore.NewMemoryStore(),
		session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("session.NewManager: %w", err)
	}
	api, err := apiclient.New(c.GetAPIBaseURL(), sessionManager,
		apiclient.WithLogger(logger),
		apiclient.WithAuthFailureHandler(sessionManager.ForceLogout))
	if err != nil {
		return fmt.Errorf("apiclient.New: %w", err)
	}
	console, err := server.New(c, sessionManager, api, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: console}
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
