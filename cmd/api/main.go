package main

import (
	"context"
	"log"

	"github.com/01moynul/orderquery/internal/config"
	"github.com/01moynul/orderquery/internal/database"
	"github.com/01moynul/orderquery/internal/handlers"
	"github.com/01moynul/orderquery/internal/ordering"
	"github.com/01moynul/orderquery/internal/query"
	"github.com/01moynul/orderquery/internal/routes"
	"github.com/01moynul/orderquery/internal/telemetry"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

func main() {
	ctx := context.Background()

	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	defaultStrategy, err := query.ParseStrategy(cfg.DefaultStrategy, query.Paged)
	if err != nil {
		log.Fatalf("Invalid ORDERS_DEFAULT_STRATEGY: %v", err)
	}

	// 1. --- Tracing ---
	shutdown, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("WARNING: tracer shutdown: %v", err)
		}
	}()

	pool := database.Pool{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	// 2. --- Main Database Connection (Read/Write) ---
	db, err := database.OpenDB(cfg.DBDriver, cfg.PrimaryDSN, pool)
	if err != nil {
		log.Fatalf("Failed to connect to primary database: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// 3. --- Read-Only Database Connection (all order reads) ---
	dbReadOnly, err := database.OpenDB(cfg.DBDriver, cfg.ReadOnlyDSN, pool)
	if err != nil {
		log.Fatalf("Failed to connect to read-only database: %v", err)
	}
	defer dbReadOnly.Close()

	// --- Application Setup ---
	app := handlers.New(db, dbReadOnly, ordering.NewService(db), defaultStrategy,
		query.WithMaxLimit(cfg.PageLimitMax),
	)
	router := routes.SetupRouter(app, cfg.CORSAllowOrigin)

	// --- Start Server ---
	if cfg.RunMode == "lambda" {
		adapter := ginadapter.New(router)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	log.Printf("Starting orderquery API server on %s (default strategy %s)...", cfg.Addr, defaultStrategy)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
