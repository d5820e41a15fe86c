package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/datasource"
	"github.com/xpc-health/rosterflow/ingest"
	"github.com/xpc-health/rosterflow/models/roster"
	"github.com/xpc-health/rosterflow/xpc"
)

//go:embed index.html
var indexHTML []byte

// RosterRouter serves the upload form and the roster processing endpoint.
type RosterRouter struct {
	pipeline  *ingest.Pipeline
	submitter *xpc.Submitter // nil when the XPC API is not configured
	log       zerolog.Logger
}

// NewRosterRouter creates the router. A nil submitter disables the
// send-to-API path but still allows parse-only processing.
func NewRosterRouter(pipeline *ingest.Pipeline, submitter *xpc.Submitter, log zerolog.Logger) *RosterRouter {
	return &RosterRouter{
		pipeline:  pipeline,
		submitter: submitter,
		log:       log,
	}
}

func (rr *RosterRouter) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", rr.handleIndex)
	r.Post("/process", rr.handleProcess)

	return r
}

func (rr *RosterRouter) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

type processResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (rr *RosterRouter) handleProcess(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("csv_file")
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "No file provided"})
		return
	}
	defer file.Close()

	records, err := rr.parseUpload(file, header.Filename)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, ingest.ErrEmptyInput) && !errors.Is(err, ingest.ErrInsufficientRows) && !errors.Is(err, ingest.ErrNoRecords) {
			rr.log.Warn().Err(err).Str("filename", header.Filename).Msg("Roster upload failed")
		}
		respondWithJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if r.FormValue("send_api") == "true" {
		if rr.submitter == nil {
			respondWithJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "XPC API is not configured"})
			return
		}
		results := rr.submitter.Submit(records)
		respondWithJSON(w, http.StatusOK, processResponse{Success: true, Count: len(results), Data: results})
		return
	}

	respondWithJSON(w, http.StatusOK, processResponse{Success: true, Count: len(records), Data: records})
}

func (rr *RosterRouter) parseUpload(file io.Reader, filename string) ([]roster.PatientRecord, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		table, err := datasource.ReadXLSX(file, "", rr.log)
		if err != nil {
			return nil, err
		}
		return rr.pipeline.ParseTable(table)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return rr.pipeline.Parse(string(content))
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
