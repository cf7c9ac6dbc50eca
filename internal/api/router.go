package api

import (
	"net/http"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/radicados"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/sources"

	"github.com/gorilla/mux"
)

func NewRouter(sourcesSvc sources.Service, radicadosSvc radicados.Service) *mux.Router {
	router := mux.NewRouter()
	handler := NewAPIHandler(sourcesSvc, radicadosSvc)

	router.Use(LoggingMiddleware)

	router.HandleFunc("/ping", handler.PingHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sources", handler.ListSourcesHandler).Methods(http.MethodGet)
	api.HandleFunc("/scrapers/bolivar/radicados", handler.QueryRadicadosHandler).Methods(http.MethodPost)
	api.HandleFunc("/scrapers/bolivar/radicados/export", handler.ExportRadicadosHandler).Methods(http.MethodPost)

	return router
}
