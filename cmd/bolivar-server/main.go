package main

import (
	"context"
	"flag"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/internal/api"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/configutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/serviceutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/sqliteutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/telemetry"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/radicados"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/sources"
	sourcesdb "github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/sources/db"
)

type Config struct {
	Port     int    `json:"port"`
	Database string `json:"database"`
	// portal login for batches that set use_server_auth; these never
	// appear in request bodies
	Credentials struct {
		UserId   string `json:"user_id"`
		Password string `json:"password"`
		Poliza   string `json:"poliza"`
	} `json:"credentials"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "bolivar-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InitSlog(*verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Database == "" {
		cfg.Database = "sources.db"
	}

	db, err := sqliteutil.OpenDB(sourcesdb.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open sources db", err)
	}
	defer db.Close()

	sourcesSvc := sources.NewService(db)
	err = sourcesSvc.Seed(ctx)
	if err != nil {
		serviceutil.Fatal("seed sources", err)
	}

	radicadosSvc := radicados.NewService(bolivar.Credentials{
		UserId:   cfg.Credentials.UserId,
		Password: cfg.Credentials.Password,
		Poliza:   cfg.Credentials.Poliza,
	})

	router := api.NewRouter(sourcesSvc, radicadosSvc)
	serviceutil.StartHttpServer(ctx, cfg.Port, router)
}
