package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaughan-dsouza/simple-posts/internal/client"
	"github.com/vaughan-dsouza/simple-posts/internal/config"
	"github.com/vaughan-dsouza/simple-posts/internal/handlers"
	"github.com/vaughan-dsouza/simple-posts/internal/models"
	"github.com/vaughan-dsouza/simple-posts/internal/store"
	"github.com/vaughan-dsouza/simple-posts/internal/viewstate"
)

type apiLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *apiLog) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		l.calls = append(l.calls, r.Method+" "+r.URL.Path)
		l.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (l *apiLog) take() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.calls
	l.calls = nil
	return out
}

type env struct {
	t      *testing.T
	store  *store.MemoryStore
	api    *apiLog
	apiURL string
	server *Server
	url    string
	http   *http.Client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.WebConfig {
	return &config.WebConfig{
		SessionSecret:  "test-secret-test-secret-test-sec",
		SessionIdleTTL: time.Hour,
	}
}

func newEnv(t *testing.T, seed ...models.PostInput) *env {
	t.Helper()
	return newEnvWithConfig(t, testConfig(), seed...)
}

func newEnvWithConfig(t *testing.T, cfg *config.WebConfig, seed ...models.PostInput) *env {
	t.Helper()
	logger := discardLogger()

	st := store.NewMemoryStore()
	for _, in := range seed {
		_, err := st.Create(context.Background(), in)
		require.NoError(t, err)
	}

	log := &apiLog{}
	apiSrv := httptest.NewServer(log.wrap(handlers.NewHandler(st, nil, logger).Routes(logger, nil)))
	t.Cleanup(apiSrv.Close)

	srv := New(client.New(apiSrv.URL), cfg, logger)
	webSrv := httptest.NewServer(srv.Routes())
	t.Cleanup(webSrv.Close)

	return &env{t: t, store: st, api: log, apiURL: apiSrv.URL, server: srv, url: webSrv.URL, http: newBrowser(t)}
}

func newBrowser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// postNoFollow submits a form and returns without following the redirect.
func (e *env) postNoFollow(path string, form url.Values) {
	e.t.Helper()
	c := *e.http
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := c.PostForm(e.url+path, form)
	require.NoError(e.t, err)
	resp.Body.Close()
	require.Equal(e.t, http.StatusSeeOther, resp.StatusCode)
}

func (e *env) get(path string) string {
	e.t.Helper()
	resp, err := e.http.Get(e.url + path)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return string(b)
}

func (e *env) post(path string, form url.Values) string {
	e.t.Helper()
	resp, err := e.http.PostForm(e.url+path, form)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return string(b)
}

func TestIndex_ListsNewestFirst(t *testing.T) {
	e := newEnv(t,
		models.PostInput{Title: "A", Content: "x"},
		models.PostInput{Title: "B", Content: "y"},
	)

	page := e.get("/")
	assert.Equal(t, []string{"GET /posts"}, e.api.take())

	first := strings.Index(page, `id="post-2"`)
	second := strings.Index(page, `id="post-1"`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Contains(t, page, "Create Post")
	assert.NotContains(t, page, `formaction="/cancel"`)
	assert.NotContains(t, page, "No posts yet")
}

func TestIndex_Empty(t *testing.T) {
	e := newEnv(t)
	page := e.get("/")
	assert.Contains(t, page, "No posts yet — create one!")
}

func TestIndex_ReloadFetchesAgain(t *testing.T) {
	e := newEnv(t)
	e.get("/")
	e.get("/")
	assert.Equal(t, []string{"GET /posts", "GET /posts"}, e.api.take())
}

func TestSubmit_Create(t *testing.T) {
	e := newEnv(t)
	e.get("/")
	e.api.take()

	page := e.post("/submit", url.Values{"title": {"Hello"}, "content": {"World"}})

	assert.Equal(t, []string{"POST /posts", "GET /posts"}, e.api.take())
	assert.Contains(t, page, `<h3 class="postTitle">Hello</h3>`)
	assert.Contains(t, page, `value=""`)

	posts, err := e.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSubmit_BlankWarnsWithoutRequest(t *testing.T) {
	e := newEnv(t)
	e.get("/")
	e.api.take()

	page := e.post("/submit", url.Values{"title": {"Draft title"}, "content": {"   "}})

	assert.Empty(t, e.api.take())
	assert.Contains(t, page, viewstate.MsgBlankFields)
	assert.Contains(t, page, `value="Draft title"`)

	// the notice is shown once
	page = e.get("/")
	assert.NotContains(t, page, viewstate.MsgBlankFields)
}

func TestEditFlow(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")
	e.api.take()

	page := e.post("/edit/1", nil)
	assert.Empty(t, e.api.take())
	assert.Contains(t, page, "Update Post")
	assert.Contains(t, page, `value="A"`)
	assert.Contains(t, page, `formaction="/cancel"`)

	page = e.post("/submit", url.Values{"title": {"B"}, "content": {"x"}})
	assert.Equal(t, []string{"PUT /posts/1", "GET /posts"}, e.api.take())
	assert.Contains(t, page, `<h3 class="postTitle">B</h3>`)
	assert.Contains(t, page, "Create Post")

	got, err := e.store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Title)
}

func TestEdit_UnknownPostIsNoop(t *testing.T) {
	e := newEnv(t)
	e.get("/")

	page := e.post("/edit/99", nil)
	assert.Contains(t, page, "Create Post")
}

func TestCancel(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")
	e.post("/edit/1", nil)

	page := e.post("/cancel", url.Values{"title": {"A"}, "content": {"x"}})
	assert.Contains(t, page, "Create Post")
	assert.NotContains(t, page, `value="A"`)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")
	e.api.take()

	page := e.post("/delete/1", nil)
	assert.Empty(t, e.api.take())
	assert.Contains(t, page, viewstate.MsgConfirmDelete)
	assert.Contains(t, page, `name="confirm" value="yes"`)

	page = e.post("/delete/1", url.Values{"confirm": {"yes"}})
	assert.Equal(t, []string{"DELETE /posts/1", "GET /posts"}, e.api.take())
	assert.NotContains(t, page, viewstate.MsgConfirmDelete)
	assert.Contains(t, page, "No posts yet")
}

func TestDelete_FailureWarns(t *testing.T) {
	e := newEnv(t)
	e.get("/")

	page := e.post("/delete/42", url.Values{"confirm": {"yes"}})
	assert.Contains(t, page, viewstate.MsgDeleteFailed)
}

func TestIndex_BackendDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	srv := New(client.New(deadURL), testConfig(), discardLogger())
	web := httptest.NewServer(srv.Routes())
	defer web.Close()

	resp, err := newBrowser(t).Get(web.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), viewstate.MsgLoadFailed)
	assert.NotContains(t, string(b), "No posts yet")
}

func TestSessionsAreIsolated(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")
	e.post("/edit/1", nil)

	other := &env{t: t, url: e.url, http: newBrowser(t)}
	page := other.get("/")
	assert.Contains(t, page, "Create Post")
	assert.Equal(t, 2, e.server.sessions.len())
}

func TestIndex_EvictedSessionFetchesAgain(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSessions = 1
	e := newEnvWithConfig(t, cfg)
	e.get("/")
	e.postNoFollow("/cancel", nil)

	// a second visitor pushes the first controller out of the registry
	other := &env{t: t, url: e.url, http: newBrowser(t)}
	other.get("/")

	_, err := e.store.Create(context.Background(), models.PostInput{Title: "A", Content: "x"})
	require.NoError(t, err)
	e.api.take()

	page := e.get("/")
	assert.Equal(t, []string{"GET /posts"}, e.api.take())
	assert.Contains(t, page, `<h3 class="postTitle">A</h3>`)
	assert.NotContains(t, page, "No posts yet")
}

func TestIndex_RestartedServerFetchesAgain(t *testing.T) {
	e := newEnv(t)
	e.get("/")
	e.postNoFollow("/cancel", nil)

	_, err := e.store.Create(context.Background(), models.PostInput{Title: "A", Content: "x"})
	require.NoError(t, err)
	e.api.take()

	// same session secret, empty registry
	restarted := httptest.NewServer(New(client.New(e.apiURL), testConfig(), discardLogger()).Routes())
	defer restarted.Close()
	e.url = restarted.URL

	page := e.get("/")
	assert.Equal(t, []string{"GET /posts"}, e.api.take())
	assert.Contains(t, page, `<h3 class="postTitle">A</h3>`)
}

func TestEdit_AfterRestartMountsFirst(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")

	restarted := httptest.NewServer(New(client.New(e.apiURL), testConfig(), discardLogger()).Routes())
	defer restarted.Close()
	e.url = restarted.URL
	e.api.take()

	page := e.post("/edit/1", nil)
	assert.Equal(t, []string{"GET /posts"}, e.api.take())
	assert.Contains(t, page, "Update Post")
	assert.Contains(t, page, `value="A"`)
}

func TestSessions_Capped(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSessions = 3
	e := newEnvWithConfig(t, cfg)

	for i := 0; i < 10; i++ {
		(&env{t: t, url: e.url, http: newBrowser(t)}).get("/")
	}
	assert.Equal(t, 3, e.server.sessions.len())
}

func TestState_WithoutSessionRegistersNothing(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})

	for i := 0; i < 50; i++ {
		resp, err := http.Get(e.url + "/state")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0, e.server.sessions.len())
	assert.Empty(t, e.api.take())

	var st stateJSON
	require.NoError(t, json.Unmarshal([]byte(e.get("/state")), &st))
	assert.Equal(t, "create", st.Mode)
	assert.NotNil(t, st.Posts)
	assert.Empty(t, st.Posts)
	assert.Nil(t, st.Editing)
}

func TestState(t *testing.T) {
	e := newEnv(t, models.PostInput{Title: "A", Content: "x"})
	e.get("/")
	e.post("/edit/1", nil)

	var st stateJSON
	require.NoError(t, json.Unmarshal([]byte(e.get("/state")), &st))
	assert.Equal(t, "edit", st.Mode)
	require.NotNil(t, st.Editing)
	assert.Equal(t, int64(1), *st.Editing)
	assert.Equal(t, "A", st.Title)
	assert.Len(t, st.Posts, 1)
	assert.False(t, st.Loading)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "OK", e.get("/healthz"))
}
