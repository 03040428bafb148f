package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/arunsworld/farefinder"
	"github.com/arunsworld/farefinder/config"
	"github.com/arunsworld/farefinder/handlers"
	"github.com/arunsworld/farefinder/webserver"
	"github.com/gorilla/mux"
)

//go:embed embed/*
var webContent embed.FS

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	port := flag.Int("port", 0, "port to run fare finder on (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	if err := start(cfg); err != nil {
		log.Fatal(err)
	}
}

func start(cfg *config.Config) error {
	shutdownCtx, shutdown := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer shutdown()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := farefinder.NewClock(loc)
	finder := farefinder.NewFinder(cfg.FinderOptions())

	handler := mux.NewRouter()
	handlers.RegisterHandlers(handler, finder, handlers.Settings{
		Today:           clock.Today,
		HorizonDays:     cfg.Search.HorizonDays,
		DefaultSpanDays: cfg.Search.DefaultSpanDays,
		DefaultDays:     cfg.DefaultDays(),
		CurrencySymbol:  cfg.API.CurrencySymbol,
	}, mustFSSub(webContent, "embed/static"), mustFSSub(webContent, "embed/html"))

	if err := webserver.NewHTTPWebServer(handler).Serve(shutdownCtx, cfg.HTTP.Port); err != nil {
		return err
	}

	return nil
}

func mustFSSub(src fs.FS, dir string) fs.FS {
	fsys, err := fs.Sub(src, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
