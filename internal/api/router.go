package api

import (
	"net/http"
	"water-quality-dashboard/internal/api/handlers"
	"water-quality-dashboard/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(dashboard *services.Dashboard, title, subtitle string) http.Handler {
	mux := http.NewServeMux()

	indexHandler := &handlers.IndexHandler{Title: title, Subtitle: subtitle}
	healthHandler := &handlers.HealthHandler{LastLoaded: dashboard.LastLoaded}
	sheetHandler := &handlers.SheetHandler{Dashboard: dashboard}
	figureHandler := &handlers.FigureHandler{Dashboard: dashboard}
	refreshHandler := &handlers.RefreshHandler{Dashboard: dashboard}

	mux.HandleFunc("/", indexHandler.Index)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/sheets", sheetHandler.List)
	mux.HandleFunc("/dates", sheetHandler.Dates)
	mux.HandleFunc("/depths", sheetHandler.Depths)
	mux.HandleFunc("/figure", figureHandler.Figure)
	mux.HandleFunc("/refresh", refreshHandler.Refresh)
	mux.HandleFunc("/viewport", handlers.Viewport)

	return requestIDMiddleware(loggingMiddleware(mux))
}
