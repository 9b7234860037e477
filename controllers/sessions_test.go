package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bingolive/bingo-live/controllers"
	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/repository"
	"github.com/bingolive/bingo-live/routes"
	"github.com/bingolive/bingo-live/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "operator"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := services.NewManager(repository.NewMemoryStore(), nil, nil, services.Options{
		SessionID:   "main",
		Rule:        game.RuleFullCard,
		TicketCount: 5,
		Rand:        rand.New(rand.NewSource(1)),
	}, nil)
	require.NoError(t, err)

	r := gin.New()
	routes.SetupRoutes(r,
		controllers.NewSessionController(manager, nil),
		controllers.NewPlayerController(manager, nil),
		controllers.NewAuthController(testPassword),
	)
	return r
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(gin.H{"password": testPassword})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies())
	return w.Result().Cookies()[0]
}

func doJSON(r *gin.Engine, method, path string, payload interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorRoutesRequireLogin(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/sessions/main/draw", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body, _ := json.Marshal(gin.H{"password": "wrong"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDrawAndMarkFlow(t *testing.T) {
	r := newTestRouter(t)
	cookie := login(t, r)

	w := doJSON(r, http.MethodPost, "/api/sessions/main/draw", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var drawResp struct {
		Number  int           `json:"number"`
		Session game.Snapshot `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drawResp))
	assert.GreaterOrEqual(t, drawResp.Number, 1)
	assert.LessOrEqual(t, drawResp.Number, 75)
	assert.Len(t, drawResp.Session.DrawnNumbers, 1)

	// Marking the just-drawn number conflicts.
	w = doJSON(r, http.MethodPost, "/api/sessions/main/mark", gin.H{"number": drawResp.Number}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/sessions/main/mark", gin.H{"number": 200}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown session.
	w = doJSON(r, http.MethodPost, "/api/sessions/nope/draw", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionQueries(t *testing.T) {
	r := newTestRouter(t)
	cookie := login(t, r)

	doJSON(r, http.MethodPost, "/api/sessions/main/prize", gin.H{"prize": "Cake"}, cookie)
	doJSON(r, http.MethodPost, "/api/sessions/main/mark", gin.H{"number": 42}, cookie)

	w := doJSON(r, http.MethodGet, "/api/sessions/main", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "Cake", snap.CurrentPrize)
	assert.Equal(t, []int{42}, snap.DrawnNumbers)
	require.NotNil(t, snap.LastNumber)
	assert.Equal(t, 42, *snap.LastNumber)

	w = doJSON(r, http.MethodGet, "/api/sessions/main/tickets/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view game.TicketView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.NotNil(t, view.Ticket)
	assert.NotEmpty(t, view.Marked, "free cell is always marked")

	w = doJSON(r, http.MethodGet, "/api/sessions/main/tickets/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetEndpoint(t *testing.T) {
	r := newTestRouter(t)
	cookie := login(t, r)

	doJSON(r, http.MethodPost, "/api/sessions/main/mark", gin.H{"number": 7}, cookie)
	w := doJSON(r, http.MethodPost, "/api/sessions/main/reset", gin.H{"clear_winners": true}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/sessions/main", nil, nil)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.DrawnNumbers)
	assert.Equal(t, game.StatusReset, snap.Status)
}

func TestWinnerContactIsMasked(t *testing.T) {
	r := newTestRouter(t)
	cookie := login(t, r)

	w := doJSON(r, http.MethodPost, "/api/players/assign",
		gin.H{"name": "Ana", "phone": "5511999990000", "ticket_id": "1"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Fetch the ticket grid and mark every number on it.
	w = doJSON(r, http.MethodGet, "/api/sessions/main/tickets/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view game.TicketView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	for _, n := range view.Ticket.Numbers() {
		w = doJSON(r, http.MethodPost, "/api/sessions/main/mark", gin.H{"number": n}, cookie)
		require.Equal(t, http.StatusOK, w.Code, "marking %d", n)
	}

	w = doJSON(r, http.MethodGet, "/api/sessions/main/winners", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Winners []game.WinnerRecord `json:"winners"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Winners, 1)
	assert.Equal(t, "1", resp.Winners[0].TicketID)
	assert.Equal(t, "Ana", resp.Winners[0].OwnerName)
	assert.Equal(t, "*********0000", resp.Winners[0].OwnerContact)
	assert.NotContains(t, fmt.Sprintf("%v", resp.Winners), "5511999990000")
}
