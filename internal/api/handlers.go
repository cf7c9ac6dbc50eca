package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/radicados"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/sources"
)

// APIHandler holds the services the HTTP handlers delegate to.
type APIHandler struct {
	Sources   sources.Service
	Radicados radicados.Service
}

func NewAPIHandler(sourcesSvc sources.Service, radicadosSvc radicados.Service) *APIHandler {
	return &APIHandler{
		Sources:   sourcesSvc,
		Radicados: radicadosSvc,
	}
}

// PingHandler responds to ping requests to check server health.
func (h *APIHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":   "pong",
		"timestamp": timezone.Now().Format("2006-01-02T15:04:05-07:00"),
	})
}

// ListSourcesHandler returns the fixed source allow-list.
func (h *APIHandler) ListSourcesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sources.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list sources")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(list),
		"sources": list,
	})
}

// radicadoList accepts either a JSON list of identifiers or one pasted
// block of text separated by newlines, commas or semicolons.
type radicadoList []string

func (r *radicadoList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*r = bolivar.NormalizeRadicados(asList)
		return nil
	}
	var asText string
	if err := json.Unmarshal(data, &asText); err != nil {
		return errors.New("radicados must be a string or a list of strings")
	}
	*r = bolivar.ParseRadicados(asText)
	return nil
}

// batchQueryRequest deliberately has no credential fields. Server-auth
// credentials come from process configuration, never over the wire.
type batchQueryRequest struct {
	Cookie        string       `json:"cookie"`
	UseServerAuth bool         `json:"use_server_auth"`
	Radicados     radicadoList `json:"radicados"`
}

// QueryRadicadosHandler runs one batch of claim lookups. Requests
// missing either an auth input or identifiers are rejected before any
// portal traffic happens.
func (h *APIHandler) QueryRadicadosHandler(w http.ResponseWriter, r *http.Request) {
	var req batchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Cookie == "" && !req.UseServerAuth {
		respondWithError(w, http.StatusBadRequest, "supply a session cookie or set use_server_auth")
		return
	}
	if len(req.Radicados) == 0 {
		respondWithError(w, http.StatusBadRequest, "no radicados supplied")
		return
	}

	batch, err := h.Radicados.QueryBatch(r.Context(), radicados.BatchRequest{
		CookieHeader:  req.Cookie,
		UseServerAuth: req.UseServerAuth,
		Radicados:     req.Radicados,
	})
	if err != nil {
		switch {
		case errors.Is(err, bolivar.ErrConfiguration):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, bolivar.ErrAuthentication):
			respondWithError(w, http.StatusUnauthorized, err.Error())
		default:
			respondWithError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, batch)
}

type exportRequest struct {
	Format  string           `json:"format"`
	Results []bolivar.Result `json:"results"`
}

// ExportRadicadosHandler renders already-computed results as a
// downloadable file. It never talks to the portal.
func (h *APIHandler) ExportRadicadosHandler(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	export, err := radicados.RenderExport(radicados.ExportFormat(req.Format), req.Results)
	if err != nil {
		if errors.Is(err, radicados.ErrInvalidFormat) || errors.Is(err, radicados.ErrNoRows) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Body)
}
