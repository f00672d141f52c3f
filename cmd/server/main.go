package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"
	"water-quality-dashboard/internal/adapters/cache"
	"water-quality-dashboard/internal/adapters/repositories"
	"water-quality-dashboard/internal/adapters/sheets"
	"water-quality-dashboard/internal/api"
	"water-quality-dashboard/internal/config"
	"water-quality-dashboard/internal/platform/db"
	"water-quality-dashboard/internal/ports"
	"water-quality-dashboard/internal/services"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Drive or file source, Redis or Postgres export
// cache, Postgres or in-memory readings) behind ports and starts the HTTP server.
func main() {
	config.Load()

	port := config.Get("PORT", "8080")
	spreadsheetID := config.Get("SPREADSHEET_ID", "")
	credentialsFile := config.Get("GOOGLE_CREDENTIALS_FILE", "Sheets.json")
	workbookFile := config.Get("WORKBOOK_FILE", "data.xlsx")
	redisAddr := config.Get("REDIS_ADDR", "")
	cacheTTL := config.GetDuration("EXPORT_CACHE_TTL", 5*time.Minute)
	databaseURL := config.Get("DATABASE_URL", "")
	title := config.Get("DASHBOARD_TITLE", "Autonomous Drone Water Quality Monitoring")
	subtitle := config.Get("DASHBOARD_SUBTITLE", "")

	ctx := context.Background()

	var conn *sql.DB
	if databaseURL != "" {
		var err error
		conn, err = db.Open(ctx, databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
	}

	source, err := buildSource(ctx, spreadsheetID, credentialsFile, workbookFile)
	if err != nil {
		log.Fatal(err)
	}

	var exportCache ports.ExportCache
	switch {
	case redisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()
		exportCache = cache.NewRedisExportCache(client, cacheTTL)
	case conn != nil:
		exportCache = cache.NewSQLExportCache(conn, cacheTTL)
	}
	source = cacheExports(source, exportCache)

	var repo ports.ReadingRepository = repositories.NewMemoryReadingRepository()
	if conn != nil {
		repo = repositories.NewSQLReadingRepository(conn)
	}

	dashboard := services.NewDashboard(source, sheets.ParseWorkbook, repo)
	names, err := dashboard.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Workbook loaded sheets=%d", len(names))

	router := api.NewRouter(dashboard, title, subtitle)

	// Timeouts allow for a cold Drive export during /refresh.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildSource exports from Drive when a spreadsheet id is configured and
// otherwise serves the local workbook file.
func buildSource(ctx context.Context, spreadsheetID, credentialsFile, workbookFile string) (ports.WorkbookSource, error) {
	if spreadsheetID == "" {
		log.Printf("SPREADSHEET_ID not set, serving workbook file path=%s", workbookFile)
		return sheets.NewFileSource(workbookFile), nil
	}

	tokens, err := sheets.ServiceAccountTokens(ctx, credentialsFile)
	if err != nil {
		return nil, err
	}

	exporter, err := sheets.NewDriveExporter(spreadsheetID, tokens)
	if err != nil {
		return nil, err
	}
	exporter.MirrorPath = workbookFile

	return exporter, nil
}

// cacheExports puts Drive exports behind exportCache so restarts and multiple
// replicas do not hammer Drive. Any other source is returned as is, so edits
// to a local workbook show up on the next load.
func cacheExports(source ports.WorkbookSource, exportCache ports.ExportCache) ports.WorkbookSource {
	exporter, ok := source.(*sheets.DriveExporter)
	if !ok || exportCache == nil {
		return source
	}
	return sheets.NewCachedSource(exporter, exportCache, exporter.Key())
}
