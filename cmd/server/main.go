package main

import (
	"context"
	"database/sql"
	"log"
	"medresilient-service/internal/adapters/cache"
	"medresilient-service/internal/adapters/flood"
	"medresilient-service/internal/adapters/repositories"
	"medresilient-service/internal/adapters/routing"
	"medresilient-service/internal/adapters/terrain"
	"medresilient-service/internal/api"
	"medresilient-service/internal/config"
	"medresilient-service/internal/platform/db"
	"medresilient-service/internal/ports"
	"medresilient-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	ds, err := repositories.LoadFromFiles(repositories.DatasetFiles{
		Hospitals: cfg.HospitalsCSV,
		Providers: cfg.ProvidersCSV,
		Orders:    cfg.OrdersCSV,
	})
	if err != nil {
		log.Fatal(err)
	}
	store := repositories.NewDatasetStore(ds)

	routeProvider, routeName := buildRouteProvider(cfg)

	var zones ports.FloodZoneProvider = flood.NewNFHLZoneProvider(cfg.FEMANFHLURL)

	var terrainProvider ports.TerrainProvider
	if cfg.TerrainEnabled {
		terrainProvider = terrain.NewOpenMeteoProvider(cfg.OpenMeteoURL)
	}

	// Upstream lookups are cached in Redis when configured, else in Postgres.
	lookupCache, closeCache := buildLookupCache(cfg)
	defer closeCache()
	if lookupCache != nil {
		if routeProvider != nil {
			routeProvider = cache.NewCachedRouteProvider(routeProvider, lookupCache, cfg.CacheTTL)
		}
		zones = cache.NewCachedFloodZoneProvider(zones, lookupCache, cfg.CacheTTL)
		if terrainProvider != nil {
			terrainProvider = cache.NewCachedTerrainProvider(terrainProvider, lookupCache, cfg.CacheTTL)
		}
	}

	risk := services.NewFloodRiskResolver(zones, terrainProvider, cfg.UpstreamTimeout)
	engine := services.NewRecommender(services.NewRouteResolver(routeProvider, cfg.UpstreamTimeout), risk)
	engine.Alpha = cfg.DefaultAlpha
	engine.Beta = cfg.DefaultBeta
	engine.Workers = cfg.ScoringWorkers

	router := api.NewRouter(api.Deps{
		Data:              store,
		Reloader:          store,
		Engine:            engine,
		Risk:              risk,
		Disasters:         flood.NewOpenFEMADisasterProvider(cfg.OpenFEMAURL),
		UploadDir:         cfg.UploadDir,
		UpstreamTimeout:   cfg.UpstreamTimeout,
		Workers:           cfg.ScoringWorkers,
		RouteProviderName: routeName,
		TerrainEnabled:    cfg.TerrainEnabled,
	})

	// Timeouts are tuned for cold-cache scoring (one route and two risk lookups per provider).
	log.Printf("Server listening addr=:%s route_provider=%s terrain=%t", cfg.Port, routeName, cfg.TerrainEnabled)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: err=%v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// buildRouteProvider returns nil when routing is disabled or unkeyed;
// the route resolver then uses straight-line distances.
func buildRouteProvider(cfg config.Config) (ports.RouteProvider, string) {
	switch cfg.RouteProvider {
	case "ors":
		p, err := routing.NewORSRouteProvider(cfg.ORSAPIKey)
		if err != nil {
			log.Printf("ORS routing disabled: %v", err)
			return nil, "none"
		}
		return p, "ors"
	case "google":
		p, err := routing.NewGoogleRouteProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Printf("Google routing disabled: %v", err)
			return nil, "none"
		}
		return p, "google"
	case "none":
		return nil, "none"
	default:
		log.Printf("unknown ROUTE_PROVIDER=%q, routing disabled", cfg.RouteProvider)
		return nil, "none"
	}
}

func buildLookupCache(cfg config.Config) (ports.LookupCache, func()) {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := cache.NewRedisLookupCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis lookup cache disabled: %v", err)
		} else {
			log.Println("Lookup cache: redis")
			return c, func() { _ = c.Close() }
		}
	}

	if cfg.DatabaseURL != "" {
		conn, err := openCacheDB(cfg.DatabaseURL)
		if err != nil {
			log.Printf("postgres lookup cache disabled: %v", err)
		} else {
			log.Println("Lookup cache: postgres")
			return cache.NewSQLLookupCache(conn), func() { _ = conn.Close() }
		}
	}

	return nil, func() {}
}

func openCacheDB(databaseURL string) (*sql.DB, error) {
	conn, err := db.Open(databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
