package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/service"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

type Dependencies struct {
	Logger    zerolog.Logger
	Addr      string
	Access    *service.AccessService
	Schedule  *service.ScheduleService
	Suppliers *service.SupplierService
}

type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
	mux        *http.ServeMux
	access     *service.AccessService
	schedule   *service.ScheduleService
	suppliers  *service.SupplierService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:    d.Logger,
		mux:       mux,
		access:    d.Access,
		schedule:  d.Schedule,
		suppliers: d.Suppliers,
	}

	mux.HandleFunc("GET /v1/records", s.handleListRecords)
	mux.HandleFunc("POST /v1/records", s.handleCreateRecord)
	mux.HandleFunc("PUT /v1/records/{idx}", s.handleUpdateRecord)
	mux.HandleFunc("DELETE /v1/records/{idx}", s.handleDeleteRecord)

	mux.HandleFunc("GET /v1/suppliers", s.handleListSuppliers)
	mux.HandleFunc("POST /v1/suppliers", s.handleAddSupplier)
	mux.HandleFunc("DELETE /v1/suppliers/{idx}", s.handleRemoveSupplier)

	mux.HandleFunc("GET /v1/export/csv", s.handleExportCSV)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// resolveMode pulls the caller's store/PIN from query parameters (matching
// the legacy URL scheme) or the X-Agenda-Store / X-Agenda-Pin headers.
func (s *Server) resolveMode(r *http.Request) types.AccessMode {
	store := r.URL.Query().Get("store")
	pin := r.URL.Query().Get("pin")
	if h := r.Header.Get("X-Agenda-Store"); h != "" {
		store = h
	}
	if h := r.Header.Get("X-Agenda-Pin"); h != "" {
		pin = h
	}
	return s.access.Resolve(store, pin)
}

// ── Records ──────────────────────────────────────────────────────────────────

type recordListResponse struct {
	Count   int                   `json:"count"`
	Records []types.ServiceRecord `json:"records"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)
	q := r.URL.Query()

	records, err := s.schedule.List(r.Context(), mode, q.Get("from"), q.Get("to"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []types.ServiceRecord{}
	}
	writeJSON(w, http.StatusOK, recordListResponse{Count: len(records), Records: records})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	var in types.RecordInput
	if !s.decodeJSON(w, r, &in) {
		return
	}

	rec, err := s.schedule.Create(r.Context(), mode, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var in types.RecordInput
	if !s.decodeJSON(w, r, &in) {
		return
	}

	rec, err := s.schedule.Update(r.Context(), mode, idx, in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.schedule.Delete(r.Context(), mode, idx); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

type supplierListResponse struct {
	Count     int      `json:"count"`
	Suppliers []string `json:"suppliers"`
}

type supplierInput struct {
	Name string `json:"name"`
}

func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	names, err := s.suppliers.List(r.Context(), mode)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, supplierListResponse{Count: len(names), Suppliers: names})
}

func (s *Server) handleAddSupplier(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	var in supplierInput
	if !s.decodeJSON(w, r, &in) {
		return
	}
	if err := s.suppliers.Add(r.Context(), mode, in.Name); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveSupplier(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)

	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.suppliers.Remove(r.Context(), mode, idx); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Export ───────────────────────────────────────────────────────────────────

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	mode := s.resolveMode(r)
	q := r.URL.Query()

	records, err := s.schedule.List(r.Context(), mode, q.Get("from"), q.Get("to"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="servicos.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"store", "supplier", "technician", "service_date", "service_time", "recurrence", "next_due", "notes"})
	for _, rec := range records {
		_ = cw.Write([]string{
			rec.Store, rec.Supplier, rec.Technician,
			rec.ServiceDate, rec.ServiceTime, rec.Recurrence, rec.NextDue, rec.Notes,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are gone; all we can do is log the truncated download.
		s.logger.Error().Err(err).Msg("csv export write failed")
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return false
	}
	return true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_index", "record index must be an integer")
		return 0, false
	}
	return idx, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "auth_required", "store and PIN required")
	case errors.Is(err, service.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access_denied", "access denied")
	case errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrInvalidSupplier):
		writeError(w, http.StatusUnprocessableEntity, "unknown_supplier", err.Error())
	case errors.Is(err, service.ErrUnknownStore):
		writeError(w, http.StatusUnprocessableEntity, "unknown_store", err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
