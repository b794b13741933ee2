package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

const defaultEmail = "doctor@example.com"

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) AppointmentBooked(recipient string, _ models.AppointmentInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, recipient)
}

type testServer struct {
	router *gin.Engine
	store  *store.MemoryGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mem := store.NewMemoryGateway()
	h := NewHandler(mem, nil, Options{
		DefaultEmail: defaultEmail,
		Driver:       "memory",
		DatabaseURL:  "mongodb://localhost:27017",
		DatabaseName: "doctor_portfolio",
	})
	r := gin.New()
	h.RegisterRoutes(r)
	return &testServer{router: r, store: mem}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func items(t *testing.T, resp map[string]any) []map[string]any {
	t.Helper()
	raw, ok := resp["items"].([]any)
	require.True(t, ok, "items missing from %v", resp)
	out := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		out = append(out, it.(map[string]any))
	}
	return out
}

func detailFields(t *testing.T, resp map[string]any) []string {
	t.Helper()
	raw, ok := resp["detail"].([]any)
	require.True(t, ok, "detail is not a field list: %v", resp)
	fields := make([]string, 0, len(raw))
	for _, d := range raw {
		fields = append(fields, d.(map[string]any)["field"].(string))
	}
	return fields
}
