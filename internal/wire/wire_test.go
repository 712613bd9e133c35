package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"business-cards/internal/data/repository"
	"business-cards/internal/data/repository/memory"
	"business-cards/pkg/middleware"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	router http.Handler
	repo   *repository.Repository
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Results *int              `json:"results"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := token.NewManager("wire-test-secret", time.Hour)
	require.NoError(t, err)

	config := &utils.Config{
		App:      utils.AppConfig{CORSOrigins: []string{"*"}},
		Security: utils.SecurityConfig{BcryptCost: 4},
	}
	repo := memory.NewRepository()
	app := Wiring(repo, tokens, config, zap.NewNop())
	return &testServer{t: t, router: app.Router, repo: repo}
}

func (s *testServer) do(method, path, tok string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set(middleware.TokenHeader, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func registerBody(email string, business bool) map[string]any {
	return map[string]any{
		"name":       map[string]string{"first": "Dana", "last": "Levi"},
		"email":      email,
		"password":   "Abc123!",
		"phone":      "0501234567",
		"address":    map[string]any{"country": "Israel", "city": "Haifa", "street": "Herzl", "houseNumber": 5},
		"image":      map[string]string{"url": "https://example.com/a.png", "alt": "avatar"},
		"isBusiness": business,
	}
}

func cardBody() map[string]any {
	return map[string]any{
		"title":       "Web Development Services",
		"subtitle":    "Modern sites",
		"description": "Full stack web development for small businesses",
		"phone":       "0523456789",
		"email":       "business@example.com",
		"web":         "https://example.com",
		"image":       map[string]string{"url": "https://picsum.photos/200", "alt": "logo"},
		"address":     map[string]any{"country": "Israel", "city": "Haifa", "street": "Herzl", "houseNumber": 10, "zip": "3303139"},
	}
}

type authData struct {
	ID         string `json:"_id"`
	Token      string `json:"token"`
	IsBusiness bool   `json:"isBusiness"`
	Password   string `json:"password"`
}

func (s *testServer) register(email string, business bool) authData {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/user/register", "", registerBody(email, business))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var data authData
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data
}

type cardData struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title"`
	BizNumber int      `json:"bizNumber"`
	Likes     []string `json:"likes"`
	UserID    *struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	} `json:"userId"`
}

func TestUserFlow(t *testing.T) {
	s := newTestServer(t)

	user := s.register("a@b.com", false)
	assert.Empty(t, user.Password, "hash never leaves the server")

	rec, env := s.do(http.MethodPost, "/api/user/register", "", registerBody("A@B.com", false))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", env.Message)

	rec, env = s.do(http.MethodPost, "/api/user/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPassword := env.Message
	rec, env = s.do(http.MethodPost, "/api/user/login", "", map[string]string{"email": "x@b.com", "password": "Abc123!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPassword, env.Message)

	rec, env = s.do(http.MethodPost, "/api/user/login", "", map[string]string{"email": "a@b.com", "password": "Abc123!"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login authData
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, user.ID, login.ID)

	rec, _ = s.do(http.MethodGet, "/api/user/getUserById", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/user/getUserById", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "password")

	rec, env = s.do(http.MethodPut, "/api/user/updateUser", login.Token, map[string]any{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "phone")

	rec, env = s.do(http.MethodPut, "/api/user/updateUser", login.Token, map[string]any{"phone": "0509999999", "isAdmin": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"isAdmin":false`)

	rec, env = s.do(http.MethodPatch, "/api/user/updateBusinessStatus", login.Token, map[string]any{"isBusiness": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"isBusiness":true`)

	rec, env = s.do(http.MethodGet, "/api/user/getAllUsers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Results)
	assert.Equal(t, 1, *env.Results)

	rec, _ = s.do(http.MethodDelete, "/api/user/deleteUser", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, env = s.do(http.MethodGet, "/api/user/getUserById", login.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", env.Message)
}

func TestCardFlow(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("biz@b.com", true)
	regular := s.register("user@b.com", false)

	rec, env := s.do(http.MethodPost, "/api/card/addcard", regular.Token, cardBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Business account required", env.Message)

	rec, env = s.do(http.MethodPost, "/api/card/addcard", owner.Token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "title")

	rec, env = s.do(http.MethodPost, "/api/card/addcard", owner.Token, cardBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var card cardData
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.GreaterOrEqual(t, card.BizNumber, 100000)
	require.NotNil(t, card.UserID)
	assert.Equal(t, owner.ID, card.UserID.ID)

	rec, env = s.do(http.MethodGet, "/api/card/cards", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *env.Results)

	rec, env = s.do(http.MethodGet, "/api/card/my-cards", regular.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, *env.Results)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, env = s.do(http.MethodGet, "/api/card/card/"+card.ID, regular.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// foreign and missing cards are indistinguishable on update
	rec, env = s.do(http.MethodPut, "/api/card/card/"+card.ID, regular.Token, map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Card not found or unauthorized", env.Message)

	rec, env = s.do(http.MethodPut, "/api/card/card/"+card.ID, owner.Token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(http.MethodPut, "/api/card/card/"+card.ID, owner.Token, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated cardData
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, card.BizNumber, updated.BizNumber)

	rec, env = s.do(http.MethodPatch, "/api/card/card/"+card.ID+"/like", regular.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var liked cardData
	require.NoError(t, json.Unmarshal(env.Data, &liked))
	assert.Equal(t, []string{regular.ID}, liked.Likes)

	rec, env = s.do(http.MethodPatch, "/api/card/card/"+card.ID+"/like", regular.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unliked cardData
	require.NoError(t, json.Unmarshal(env.Data, &unliked))
	assert.Empty(t, unliked.Likes)

	rec, env = s.do(http.MethodDelete, "/api/card/card/"+card.ID, regular.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to delete this card", env.Message)

	rec, _ = s.do(http.MethodDelete, "/api/card/card/"+card.ID, owner.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/card/card/"+card.ID, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Card not found", env.Message)

	rec, _ = s.do(http.MethodGet, "/api/card/card/not-a-uuid", owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDeletesAnyCard(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("biz@b.com", true)
	other := s.register("admin@b.com", false)

	rec, env := s.do(http.MethodPost, "/api/card/addcard", owner.Token, cardBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var card cardData
	require.NoError(t, json.Unmarshal(env.Data, &card))

	// admin rights come from the token claim
	tokens, err := token.NewManager("wire-test-secret", time.Hour)
	require.NoError(t, err)
	adminToken, _, err := tokens.Issue(token.Identity{UserID: uuid.MustParse(other.ID), IsAdmin: true})
	require.NoError(t, err)

	rec, _ = s.do(http.MethodDelete, "/api/card/card/"+card.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/api/card/my-cards", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", env.Message)

	rec, env = s.do(http.MethodGet, "/api/card/my-cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied token is required", env.Message)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	s.do(http.MethodGet, "/api/card/cards", "", nil)
	rec, _ = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `business_cards_http_requests_total{method="GET",route="/api/card/cards",status="200"} 1`)

	rec, env := s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Message)
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth_StoreDown(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(downPinger{}, zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
