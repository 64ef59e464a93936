package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio-cms/folio/shared/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		Storage: config.StorageMemory,
		Http:    config.Http{SecureCookies: true},
		Media: config.Media{
			Root:             "unused",
			MaxUploadSize:    1 << 10,
			MaxImageWidth:    100,
			AllowedMimeTypes: []string{"image/png", "image/jpeg"},
		},
	}}
}

type mocks struct {
	messages *MockMessagesService
	auth     *MockAuthService
	content  *MockContentService
	media    *MockMediaService
	health   *MockHealthChecker
}

func newMocks() *mocks {
	return &mocks{
		messages: &MockMessagesService{},
		auth:     &MockAuthService{},
		content:  &MockContentService{},
		media:    &MockMediaService{},
		health:   &MockHealthChecker{},
	}
}

func (m *mocks) handler() *Handler {
	return New(m.messages, m.auth, m.content, m.media, m.health, testConfig())
}

// serve routes a single request so chi URL params resolve.
func serve(t *testing.T, h http.HandlerFunc, method, pattern, target string, body []byte, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for _, fn := range mutate {
		fn(req)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, rr)["error"]
}
