package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/clientconnect/internal/metrics"
	"github.com/stretchr/testify/require"
)

func TestInstrumentRoundTripperRecordsAPICalls(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer upstream.Close()

	client := &http.Client{Transport: metrics.InstrumentRoundTripper(http.DefaultTransport)}
	resp, err := client.Get(upstream.URL)
	require.NoError(t, err)
	resp.Body.Close()

	body := scrape(t)
	require.Contains(t, body, `clientconnect_api_requests_total{code="418",method="get"}`)
}

func TestInstrumentHandlerRecordsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", metrics.InstrumentHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/12", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)

	body := scrape(t)
	require.Contains(t, body, `clientconnect_http_requests_total{method="GET",pattern="GET /things/{id}",status="202"}`)
}

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}
