package main

import (
	"context"
	"flag"
	"log"
	"os"
	"water-quality-dashboard/internal/adapters/repositories"
	"water-quality-dashboard/internal/adapters/sheets"
	"water-quality-dashboard/internal/config"
	"water-quality-dashboard/internal/domain"
	"water-quality-dashboard/internal/platform/db"
)

func main() {
	exportPath := flag.String("export", "", "write the stored readings to this xlsx file instead of importing")
	flag.Parse()

	config.Load()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	repo := repositories.NewSQLReadingRepository(conn)

	if *exportPath != "" {
		if err := exportWorkbook(ctx, repo, *exportPath); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("Exported readings to %s.", *exportPath)
		return
	}

	workbookFile := config.Get("WORKBOOK_FILE", "data.xlsx")
	if err := importWorkbook(ctx, repo, workbookFile); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func importWorkbook(ctx context.Context, repo *repositories.SQLReadingRepository, path string) error {
	log.Printf("Importing workbook %s...", path)

	data, err := sheets.NewFileSource(path).Fetch(ctx)
	if err != nil {
		return err
	}

	wb, err := sheets.ParseWorkbook(data)
	if err != nil {
		return err
	}

	if err := repo.ReplaceAll(ctx, wb); err != nil {
		return err
	}

	total := 0
	for _, readings := range wb.Readings {
		total += len(readings)
	}
	log.Printf("Import complete sheets=%d readings=%d.", len(wb.Sheets), total)
	return nil
}

func exportWorkbook(ctx context.Context, repo *repositories.SQLReadingRepository, path string) error {
	names, err := repo.ListSheets(ctx)
	if err != nil {
		return err
	}

	wb := &domain.Workbook{Sheets: names, Readings: make(map[string][]domain.Reading, len(names))}
	for _, n := range names {
		readings, err := repo.ListReadings(ctx, n)
		if err != nil {
			return err
		}
		wb.Readings[n] = readings
	}

	data, err := sheets.EncodeWorkbook(wb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
