package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"go-contact-backend/config"
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/mail"
	"go-contact-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTransport struct {
	mu      sync.Mutex
	sent    []*mail.Message
	failAll error
}

func (s *stubTransport) Send(ctx context.Context, msg *mail.Message) error {
	if s.failAll != nil {
		return s.failAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "3000",
		ServiceName:            "Rapture Twelve Contact API",
		FromEmail:              "noreply@rapturetwelve.com",
		TeamEmails:             []string{"antonyshane@rapturetwelve.com", "kruthinvinay@rapturetwelve.com"},
		AllowedOrigins:         []string{"http://localhost:3000"},
		ContactRateLimit:       5,
		ContactRateWindowMins:  15,
		DispatchTimeoutSeconds: 5,
	}
}

func newTestRouter(t *testing.T, transport mail.Transport) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	validate := validator.New()
	validation.RegisterValidators(validate)
	contactUC := usecase.NewContactUsecase(transport, cfg, validate)
	return v1.NewRouter(v1.RouterDeps{ContactUC: contactUC, Config: cfg})
}

func postJSON(router *gin.Engine, ip string, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSubmitContactSuccess(t *testing.T) {
	transport := &stubTransport{}
	router := newTestRouter(t, transport)

	w := postJSON(router, "198.51.100.10", map[string]string{
		"name":         "Jo Li",
		"email":        "jo@acme.com",
		"organization": "Acme Inc",
		"message":      "We need a security review of our infrastructure.",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, domain.MsgSent, resp.Message)
	assert.Len(t, transport.sent, 2)
}

func TestSubmitContactValidationFailure(t *testing.T) {
	router := newTestRouter(t, &stubTransport{})

	w := postJSON(router, "198.51.100.11", map[string]string{
		"name":         "A",
		"email":        "not-an-email",
		"organization": "Acme Inc",
		"message":      "short",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.MsgValidationFailed, resp.Message)
	assert.GreaterOrEqual(t, len(resp.Errors), 3)
}

func TestSubmitContactDispatchFailure(t *testing.T) {
	transport := &stubTransport{failAll: errors.New("smtp: auth failed")}
	router := newTestRouter(t, transport)

	w := postJSON(router, "198.51.100.12", map[string]string{
		"name":         "Jo Li",
		"email":        "jo@acme.com",
		"organization": "Acme Inc",
		"message":      "We need a security review of our infrastructure.",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	// Transport detail must not leak to the client.
	assert.Equal(t, domain.MsgDispatchFailed, resp.Message)
	assert.NotContains(t, w.Body.String(), "auth failed")
}

// spyUsecase records Validate invocations so the rate-limit test can prove
// the limiter rejects before validation runs.
type spyUsecase struct {
	mu            sync.Mutex
	validateCalls int
}

func (s *spyUsecase) Validate(sub *domain.ContactSubmission) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validateCalls++
	return nil
}

func (s *spyUsecase) Dispatch(ctx context.Context, sub *domain.ContactSubmission, meta domain.RequestMeta) error {
	return nil
}

func TestSubmitContactRateLimited(t *testing.T) {
	spy := &spyUsecase{}
	router := v1.NewRouter(v1.RouterDeps{ContactUC: spy, Config: testConfig()})

	payload := map[string]string{
		"name":         "Jo Li",
		"email":        "jo@acme.com",
		"organization": "Acme Inc",
		"message":      "We need a security review of our infrastructure.",
	}

	for i := 0; i < 5; i++ {
		w := postJSON(router, "203.0.113.77", payload)
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := postJSON(router, "203.0.113.77", payload)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := decode(t, w)
	assert.Equal(t, domain.MsgRateLimited, resp.Message)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// The 6th request was rejected before validation ran.
	assert.Equal(t, 5, spy.validateCalls)

	// A different source IP is unaffected.
	w = postJSON(router, "203.0.113.78", payload)
	assert.Equal(t, http.StatusOK, w.Code)
}

func buildMultipart(t *testing.T, fields map[string]string, filename, fileMIME string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attachment"; filename=%q`, filename))
		hdr.Set("Content-Type", fileMIME)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":         "Jo Li",
		"email":        "jo@acme.com",
		"organization": "Acme Inc",
		"message":      "We need a security review of our infrastructure.",
	}
}

func TestSubmitContactMultipartWithAttachment(t *testing.T) {
	transport := &stubTransport{}
	router := newTestRouter(t, transport)

	pdf := []byte("%PDF-1.4 proposal content")
	body, contentType := buildMultipart(t, validFields(), "brief.pdf", "application/pdf", pdf)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set("Content-Type", contentType)
	req.RemoteAddr = "198.51.100.20:51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, transport.sent, 2)

	var withAttachment int
	for _, m := range transport.sent {
		if len(m.Attachments) == 1 {
			withAttachment++
			assert.Equal(t, "brief.pdf", m.Attachments[0].Filename)
			assert.Equal(t, pdf, m.Attachments[0].Content)
		}
	}
	assert.Equal(t, 1, withAttachment)
}

func TestSubmitContactRejectsDisallowedAttachment(t *testing.T) {
	transport := &stubTransport{}
	router := newTestRouter(t, transport)

	body, contentType := buildMultipart(t, validFields(), "payload.exe", "application/octet-stream", []byte{0x4D, 0x5A, 0x00})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set("Content-Type", contentType)
	req.RemoteAddr = "198.51.100.21:51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, domain.MsgFileTypeNotAllowed, resp.Message)
	assert.Empty(t, transport.sent)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubTransport{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["status"])
	assert.Equal(t, "Rapture Twelve Contact API", resp["service"])
	_, err := time.Parse(time.RFC3339, resp["timestamp"])
	assert.NoError(t, err)
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, &stubTransport{})

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, domain.MsgNotFound, resp.Message)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &stubTransport{})

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
