package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/service"
	"github.com/tenrocafes/agenda/internal/agenda/store/memory"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// brokenWriter fails every body write, like a client that dropped the
// connection mid-download.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) WriteHeader(int) {}

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestExportCSV_WriteFailureIsLogged(t *testing.T) {
	var logBuf bytes.Buffer

	access := service.NewAccessService(service.AccessConfig{
		AdminPIN:  "9999",
		StorePINs: map[string]string{"Loja A": "1111"},
	})
	supplierSvc := service.NewSupplierService(memory.NewSupplierStore(nil))
	scheduleSvc := service.NewScheduleService(memory.NewRecordStore([]types.ServiceRecord{
		{Store: "Loja A", Supplier: "Clima Rio", ServiceDate: "05/01/2024"},
	}), supplierSvc, access, zerolog.Nop())

	srv := NewServer(Dependencies{
		Logger:    zerolog.New(&logBuf),
		Addr:      ":0",
		Access:    access,
		Schedule:  scheduleSvc,
		Suppliers: supplierSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/export/csv?pin=9999", nil)
	srv.handleExportCSV(&brokenWriter{}, req)

	if !bytes.Contains(logBuf.Bytes(), []byte("csv export write failed")) {
		t.Errorf("write failure not logged: %s", logBuf.String())
	}
}
