package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"EmberVale/internal/game"
)

// Config is the environment-driven server configuration. Flags of the same
// meaning override whatever the environment supplies.
type Config struct {
	Addr         string `env:"EMBERVALE_ADDR" envDefault:":8080"`
	StorePath    string `env:"EMBERVALE_STORE" envDefault:"data/embervale.db"`
	CatalogPath  string `env:"EMBERVALE_CATALOG" envDefault:"data/catalog.json"`
	AdminAccount string `env:"EMBERVALE_ADMIN" envDefault:"admin"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP address to listen on")
	storePath := flag.String("store", cfg.StorePath, "Path to the player database")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "Path to the world catalog")
	adminAccount := flag.String("admin", cfg.AdminAccount, "Account granted administrator privileges")
	flag.Parse()

	catalog, err := game.LoadCatalog(*catalogPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal(err)
		}
		fmt.Printf("no catalog at %s, using built-in world\n", *catalogPath)
		catalog = game.DefaultCatalog()
	}

	store, err := game.OpenStore(*storePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	engine := game.NewEngine(catalog, store, game.WithAdminAccount(*adminAccount))
	server := NewServer(engine)

	stop := make(chan struct{})
	go server.Monitor().ReportLoop(stop)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		fmt.Printf("listening on %s\n", *addr)
		errs <- httpServer.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case sig := <-signals:
		fmt.Printf("received %s, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			fmt.Printf("shutdown: %v\n", err)
		}
	}

	close(stop)
	fmt.Println(server.Monitor().Report())
}
