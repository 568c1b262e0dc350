package main

import (
	"context"
	"log"

	"hand-analysis-be/internal/bootstrap"
	"hand-analysis-be/internal/config"
	"hand-analysis-be/internal/server"
	"hand-analysis-be/internal/tracer"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to bootstrap: %v", err)
	}
	defer container.Logger.Sync()

	srv := server.New(cfg, container)
	if err := srv.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
