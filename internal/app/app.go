package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app/config"
	apphttp "github.com/sam1-khan/Simple-Invoice-Generator/internal/app/http"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/infra/db/postgres"
)

func Run(configPath string) {
	cfg := config.MustLoad(configPath)

	db, err := postgres.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	router := apphttp.NewRouter(cfg, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
