package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatkit/webinar/internal/config"
	"github.com/seatkit/webinar/internal/domain"
	"github.com/seatkit/webinar/internal/interface/rest/middleware"
	"github.com/seatkit/webinar/internal/service"
	"github.com/seatkit/webinar/internal/usecase"
	"github.com/seatkit/webinar/token"
)

const testSecret = "test-secret"

type stubWebinarRepo struct {
	webinars map[string]domain.Webinar
}

func (m *stubWebinarRepo) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	w, ok := m.webinars[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *stubWebinarRepo) Create(ctx context.Context, w domain.Webinar) error {
	m.webinars[w.ID] = w
	return nil
}

func (m *stubWebinarRepo) Update(ctx context.Context, w domain.Webinar) error {
	if _, ok := m.webinars[w.ID]; !ok {
		return domain.NotFoundError{Resource: "webinar"}
	}
	m.webinars[w.ID] = w
	return nil
}

func newTestServer(t *testing.T, seats int, organizer string) (*echo.Echo, *stubWebinarRepo) {
	t.Helper()

	w, err := domain.NewWebinar("test-webinar", organizer, "Webinar Test", time.Now(), time.Now().Add(time.Hour), seats)
	require.NoError(t, err)

	repo := &stubWebinarRepo{webinars: map[string]domain.Webinar{w.ID: w}}
	h := NewHandler(usecase.NewChangeSeatsUsecase(repo), nil)

	auth := service.NewAuthService(config.Auth{Secret: testSecret})

	e := echo.New()
	e.Use(middleware.NewAuthMiddleware(auth).IdentifyIdentity)
	h.RegisterRoutes(e)

	return e, repo
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := token.Create(token.Claims{Issuer: userID, Subject: "webinar"}, testSecret)
	require.NoError(t, err)
	return "Bearer " + tok
}

func postSeats(e *echo.Echo, webinarID string, body []byte, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webinars/"+webinarID+"/seats", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

func TestChangeSeatsEndpoint(t *testing.T) {
	e, repo := newTestServer(t, 10, "test-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 30}`), bearerFor(t, "test-user"))

	require.Equal(t, http.StatusOK, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Seats updated", body["message"])
	assert.Equal(t, 30, repo.webinars["test-webinar"].Seats)
}

func TestChangeSeatsEndpointNotFound(t *testing.T) {
	e, _ := newTestServer(t, 10, "test-user")

	res := postSeats(e, "non-existing-id", []byte(`{"seats": 30}`), bearerFor(t, "test-user"))

	require.Equal(t, http.StatusNotFound, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Webinar not found", body["error"])
}

func TestChangeSeatsEndpointNotOrganizer(t *testing.T) {
	e, repo := newTestServer(t, 10, "other-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 30}`), bearerFor(t, "test-user"))

	require.Equal(t, http.StatusUnauthorized, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "User is not allowed to update this webinar", body["error"])
	assert.Equal(t, 10, repo.webinars["test-webinar"].Seats)
}

func TestChangeSeatsEndpointUnauthenticated(t *testing.T) {
	e, repo := newTestServer(t, 10, "test-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 30}`), "")

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, 10, repo.webinars["test-webinar"].Seats)
}

func TestChangeSeatsEndpointInvalidToken(t *testing.T) {
	e, _ := newTestServer(t, 10, "test-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 30}`), "Bearer garbage")

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestChangeSeatsEndpointMissingSeats(t *testing.T) {
	e, _ := newTestServer(t, 10, "test-user")

	for _, body := range []string{`{}`, `{"seats": null}`} {
		res := postSeats(e, "test-webinar", []byte(body), bearerFor(t, "test-user"))
		assert.Equal(t, http.StatusBadRequest, res.Code, "body %s", body)
	}
}

func TestChangeSeatsEndpointReduceRejected(t *testing.T) {
	e, repo := newTestServer(t, 100, "test-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 50}`), bearerFor(t, "test-user"))

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, 100, repo.webinars["test-webinar"].Seats)
}

func TestChangeSeatsEndpointCeilingRejected(t *testing.T) {
	e, repo := newTestServer(t, 100, "test-user")

	res := postSeats(e, "test-webinar", []byte(`{"seats": 1500}`), bearerFor(t, "test-user"))

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, 100, repo.webinars["test-webinar"].Seats)
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestServer(t, 10, "test-user")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
}
