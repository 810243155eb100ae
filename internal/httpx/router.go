package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AngelCh415/adspend/internal/analysis"
	"github.com/AngelCh415/adspend/internal/telemetry"
	"github.com/AngelCh415/adspend/internal/utils"
)

const internalErrorMessage = "internal error while analyzing the export"

type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewRouter(log *slog.Logger, eng *analysis.Engine, opts Options) http.Handler {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", utils.RequestIDHeader},
		ExposedHeaders: []string{utils.RequestIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", telemetry.Handler())

	analyze := func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: analysis.ErrInvalidBody.Error()})
			return
		}
		req, err := analysis.DecodeRequest(body)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		report, err := eng.Analyze(r.Context(), req)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
	mux.Post("/analyze", analyze)
	mux.Post("/api/analyze", analyze)

	return mux
}

// writeError answers 400 with the message for input errors and a generic
// 500 for everything else.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if analysis.IsInputError(err) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	log.Error("analyze failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
}

// writeJSON encodes before writing the status, so an unencodable value
// turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", " ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode response", slog.String("err", err.Error()))
		buf.Reset()
		status = http.StatusInternalServerError
		enc.Encode(errorBody{Error: internalErrorMessage})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
