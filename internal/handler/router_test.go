package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/deck-api/internal/domain/entity"
	pgRepo "github.com/yourusername/deck-api/internal/repository/postgres"
	"github.com/yourusername/deck-api/internal/service"
	"github.com/yourusername/deck-api/internal/testutil"
	"github.com/yourusername/deck-api/pkg/logger"
	"github.com/yourusername/deck-api/pkg/metrics"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingObjectRepo запоминает удаленные ключи и момент удаления
type recordingObjectRepo struct {
	mu      sync.Mutex
	removed []string
	onCall  func(paths []string)
	err     error
}

func (r *recordingObjectRepo) RemoveObjects(_ context.Context, paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.onCall != nil {
		r.onCall(paths)
	}
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, paths...)
	return nil
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	objects *recordingObjectRepo
	static  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	objects := &recordingObjectRepo{}
	log := logger.NewNop()
	m := metrics.NewManager()

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>decks</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(static, "asset.html"), []byte("<h1>assets</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o600))

	deckService := service.NewDeckService(pgRepo.NewDeckRepo(db), log, m)
	assetService := service.NewAssetService(pgRepo.NewAssetRepo(db), objects, log, m)

	router := NewRouter(RouterConfig{
		Decks:     NewDeckHandler(deckService),
		Assets:    NewAssetHandler(assetService),
		Health:    NewHealthHandler(func(context.Context) error { return nil }),
		Metrics:   m,
		Logger:    log,
		StaticDir: static,
	})
	return &testEnv{router: router, db: db, objects: objects, static: static}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	var err error
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			raw, err = json.Marshal(b)
			require.NoError(t, err)
		}
		req, err = http.NewRequest(method, path, bytes.NewReader(raw))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
	} else {
		// пустое тело как у настоящего сервера
		req, err = http.NewRequest(method, path, http.NoBody)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "Response body should be valid JSON: %s", w.Body.String())
	return v
}

func (e *testEnv) createDeck(t *testing.T, title string) entity.Deck {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/decks", map[string]string{"title": title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON[entity.Deck](t, w)
}

func (e *testEnv) recordAssets(t *testing.T, deckID string, assets ...map[string]string) []entity.Asset {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/assets", map[string]interface{}{"deckId": deckID, "assets": assets})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeJSON[struct {
		Message string         `json:"message"`
		Data    []entity.Asset `json:"data"`
	}](t, w)
	assert.Equal(t, "Metadata recorded", resp.Message)
	return resp.Data
}

func (e *testEnv) listDecks(t *testing.T) []entity.Deck {
	t.Helper()
	w := e.do(t, http.MethodGet, "/api/decks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decodeJSON[[]entity.Deck](t, w)
}

func (e *testEnv) listAssets(t *testing.T, deckID string) []entity.Asset {
	t.Helper()
	w := e.do(t, http.MethodGet, "/api/decks/"+deckID+"/assets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decodeJSON[[]entity.Asset](t, w)
}

// ============================================================================
// Decks
// ============================================================================

func TestDecks_CreateThenList(t *testing.T) {
	env := newTestEnv(t)

	assert.Empty(t, env.listDecks(t))
	assert.Equal(t, "[]", env.do(t, http.MethodGet, "/api/decks", nil).Body.String())

	deck := env.createDeck(t, "Biology")
	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "Biology", deck.Title)
	assert.False(t, deck.CreatedAt.IsZero())

	decks := env.listDecks(t)
	require.Len(t, decks, 1)
	assert.Equal(t, deck.ID, decks[0].ID)
	assert.Equal(t, "Biology", decks[0].Title)
}

func TestDecks_Create_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       interface{}
		wantError  string
		wantPrefix bool
	}{
		{name: "empty body", body: nil, wantError: "title is required"},
		{name: "missing title", body: map[string]string{}, wantError: "title is required"},
		{name: "empty title", body: map[string]string{"title": ""}, wantError: "title is required"},
		{name: "malformed json", body: "{not json", wantError: "Invalid request data: ", wantPrefix: true},
		{name: "wrong type", body: map[string]int{"title": 5}, wantError: "Invalid request data: ", wantPrefix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/decks", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeJSON[map[string]string](t, w)
			if tt.wantPrefix {
				assert.True(t, strings.HasPrefix(resp["error"], tt.wantError), resp["error"])
			} else {
				assert.Equal(t, tt.wantError, resp["error"])
			}
		})
	}

	assert.Empty(t, env.listDecks(t), "no backend write on validation error")
}

func TestDecks_Create_MissingTitleMessage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/decks", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{"error": "title is required"}, decodeJSON[map[string]string](t, w))
}

func TestDecks_ListOrderedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	repo := pgRepo.NewDeckRepo(env.db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(context.Background(), &entity.Deck{
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	decks := env.listDecks(t)
	require.Len(t, decks, 3)
	assert.Equal(t, "third", decks[0].Title)
	assert.Equal(t, "second", decks[1].Title)
	assert.Equal(t, "first", decks[2].Title)
}

func TestDecks_Update(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "before")

	w := env.do(t, http.MethodPut, "/api/decks/"+deck.ID, map[string]string{"title": "X"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeJSON[entity.Deck](t, w)
	assert.Equal(t, deck.ID, updated.ID)
	assert.Equal(t, "X", updated.Title)

	decks := env.listDecks(t)
	require.Len(t, decks, 1)
	assert.Equal(t, deck.ID, decks[0].ID)
	assert.Equal(t, "X", decks[0].Title)
}

func TestDecks_Update_UnknownIDIsSilentSuccess(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/decks/does-not-exist", map[string]string{"title": "X"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestDecks_Update_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "keep")

	for _, body := range []interface{}{map[string]string{}, map[string]string{"title": ""}, nil} {
		w := env.do(t, http.MethodPut, "/api/decks/"+deck.ID, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title is required", decodeJSON[map[string]string](t, w)["error"])
	}
	assert.Equal(t, "keep", env.listDecks(t)[0].Title)
}

func TestDecks_Delete_CascadesAssets(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "doomed")
	keep := env.createDeck(t, "keep")
	env.recordAssets(t, deck.ID, map[string]string{"title": "a", "storage_path": "p1", "public_url": "u1"})
	env.recordAssets(t, keep.ID, map[string]string{"title": "b", "storage_path": "p2", "public_url": "u2"})

	w := env.do(t, http.MethodDelete, "/api/decks/"+deck.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"message": "Deck deleted"}, decodeJSON[map[string]string](t, w))

	decks := env.listDecks(t)
	require.Len(t, decks, 1)
	assert.Equal(t, keep.ID, decks[0].ID)
	assert.Empty(t, env.listAssets(t, deck.ID))
	assert.Len(t, env.listAssets(t, keep.ID), 1)
}

func TestDecks_Delete_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/decks/does-not-exist", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Assets
// ============================================================================

func TestAssets_RecordThenList(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "deck")

	created := env.recordAssets(t, deck.ID, map[string]string{"title": "a", "storage_path": "p1", "public_url": "u1"})
	require.Len(t, created, 1)
	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, deck.ID, created[0].DeckID)

	assets := env.listAssets(t, deck.ID)
	require.Len(t, assets, 1)
	assert.Equal(t, "p1", assets[0].StoragePath)
	assert.Equal(t, "u1", assets[0].PublicURL)
	assert.Equal(t, "a", assets[0].Title)
}

func TestAssets_ListOrderedOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "deck")
	repo := pgRepo.NewAssetRepo(env.db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.CreateBatch(context.Background(), []entity.Asset{
		{DeckID: deck.ID, StoragePath: "late", CreatedAt: base.Add(2 * time.Minute)},
		{DeckID: deck.ID, StoragePath: "early", CreatedAt: base},
		{DeckID: deck.ID, StoragePath: "middle", CreatedAt: base.Add(time.Minute)},
	})
	require.NoError(t, err)

	assets := env.listAssets(t, deck.ID)
	require.Len(t, assets, 3)
	assert.Equal(t, "early", assets[0].StoragePath)
	assert.Equal(t, "middle", assets[1].StoragePath)
	assert.Equal(t, "late", assets[2].StoragePath)
}

func TestAssets_Record_EmptyListAlwaysBadRequest(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "deck")

	bodies := []interface{}{
		map[string]interface{}{"deckId": deck.ID, "assets": []interface{}{}},
		map[string]interface{}{"deckId": deck.ID},
		map[string]interface{}{"assets": []interface{}{}},
		map[string]interface{}{"deckId": "unknown", "assets": []interface{}{}},
		nil,
	}
	for _, body := range bodies {
		w := env.do(t, http.MethodPost, "/api/assets", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "assets list is empty", decodeJSON[map[string]string](t, w)["error"])
	}
	assert.Empty(t, env.listAssets(t, deck.ID))
}

func TestAssets_Record_UnknownDeckIsBackendError(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/assets", map[string]interface{}{
		"deckId": "missing",
		"assets": []map[string]string{{"title": "a", "storage_path": "p1", "public_url": "u1"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeJSON[map[string]string](t, w)["error"])
}

func TestAssets_Delete_RemovesObjectBeforeRow(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "deck")
	created := env.recordAssets(t, deck.ID, map[string]string{"title": "a", "storage_path": "p1", "public_url": "u1"})

	// В момент удаления объекта строка еще должна существовать
	var rowsDuringRemoval int
	env.objects.onCall = func([]string) {
		rowsDuringRemoval = len(env.listAssets(t, deck.ID))
	}

	w := env.do(t, http.MethodDelete, "/api/assets/"+created[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"message": "Asset deleted"}, decodeJSON[map[string]string](t, w))

	assert.Equal(t, []string{"p1"}, env.objects.removed)
	assert.Equal(t, 1, rowsDuringRemoval)
	assert.Empty(t, env.listAssets(t, deck.ID))
}

func TestAssets_Delete_UnknownIDStillOK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/assets/does-not-exist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"message": "Asset deleted"}, decodeJSON[map[string]string](t, w))
	assert.Empty(t, env.objects.removed)
}

func TestAssets_Delete_StorageFailureIgnored(t *testing.T) {
	env := newTestEnv(t)
	deck := env.createDeck(t, "deck")
	created := env.recordAssets(t, deck.ID, map[string]string{"title": "a", "storage_path": "p1", "public_url": "u1"})
	env.objects.err = errors.New("Access Denied")

	w := env.do(t, http.MethodDelete, "/api/assets/"+created[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.listAssets(t, deck.ID))
}

// ============================================================================
// Ошибки бэкенда, статика, служебные маршруты
// ============================================================================

func TestBackendFailure_Returns500WithMessage(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/decks", nil},
		{http.MethodPost, "/api/decks", map[string]string{"title": "x"}},
		{http.MethodPut, "/api/decks/1", map[string]string{"title": "x"}},
		{http.MethodDelete, "/api/decks/1", nil},
		{http.MethodGet, "/api/decks/1/assets", nil},
		{http.MethodPost, "/api/assets", map[string]interface{}{"deckId": "1", "assets": []map[string]string{{"title": "a"}}}},
		{http.MethodDelete, "/api/assets/1", nil},
	}
	for _, r := range requests {
		w := env.do(t, r.method, r.path, r.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", r.method, r.path)
		assert.Contains(t, decodeJSON[map[string]string](t, w)["error"], "database is closed", "%s %s", r.method, r.path)
	}
}

func TestStaticPages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "decks")

	w = env.do(t, http.MethodGet, "/asset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "assets")

	w = env.do(t, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = env.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeJSON[map[string]string](t, w)["error"])
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeJSON[map[string]string](t, w)["status"])

	env.listDecks(t)
	w = env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `deckapi_backend_operations_total{op="decks.list",result="ok"} 1`)
}

func TestHealth_Unavailable(t *testing.T) {
	h := NewHealthHandler(func(context.Context) error { return errors.New("connection refused") })
	r := gin.New()
	r.GET("/healthz", h.Health)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "connection refused", decodeJSON[map[string]string](t, w)["error"])
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, "/api/decks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
