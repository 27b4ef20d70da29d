package dashboard_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/yamatodev/dashboard/internal/dashboard/http"
	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/internal/dashboard/store/drivers/sqlite"
	"github.com/yamatodev/dashboard/pkg/cryptox"
	"github.com/yamatodev/dashboard/pkg/jwtx"
)

type env struct {
	server *httptest.Server
	auth   *service.AuthService
	codec  *jwtx.Codec
}

// newEnv boots the full HTTP stack against a throwaway database.
func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "e2e.db") + "?_busy_timeout=5000"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(jwtx.AlgHS256, []byte("e2e-secret"), 30*time.Minute)
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:  st,
		Hasher: cryptox.NewHasher(cryptox.WithParams(8*1024, 1, 1)),
		Codec:  codec,
	}

	router := httpapi.NewRouter(
		"test",
		[]string{"http://localhost:5173"},
		st,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	router.AuthService = auth
	router.UserService = &service.UserService{Store: st}
	router.CategoryService = &service.CategoryService{Store: st}
	router.TagService = &service.TagService{Store: st}
	router.PostService = &service.PostService{Store: st}
	router.ProjectService = &service.ProjectService{Store: st}
	router.TaskService = &service.TaskService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &env{server: server, auth: auth, codec: codec}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *env) register(t *testing.T, username, email, password string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (e *env) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, resp, &body)
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t)

	e.register(t, "alice", "alice@example.com", "correct horse")
	token := e.login(t, "alice@example.com", "correct horse")

	// /me with the fresh token
	resp := e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	var me struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.True(t, me.IsActive)

	// Wrong password is a 401 that does not name the failing half
	resp = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	var apiErr struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decode(t, resp, &apiErr)
	assert.Equal(t, "invalid_credentials", apiErr.Error)
	assert.NotContains(t, apiErr.Detail, "user")

	// Unknown account fails identically
	resp = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout is acknowledged; the token stays valid until expiry
	resp = e.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateRegistrationNamesField(t *testing.T) {
	e := newEnv(t)

	e.register(t, "alice", "alice@example.com", "correct horse")

	resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "battery staple",
	})
	var apiErr struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &apiErr)
	assert.Equal(t, "conflict", apiErr.Error)
	assert.Contains(t, apiErr.Detail, "email")
}

func TestGuardRejections(t *testing.T) {
	e := newEnv(t)

	// No token at all
	resp := e.do(t, http.MethodGet, "/api/auth/me", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token
	resp = e.do(t, http.MethodGet, "/api/auth/me", "not.a.token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired token: issue directly with a tiny TTL and wait it out
	e.register(t, "alice", "alice@example.com", "correct horse")
	short, err := e.codec.Issue("alice@example.com", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	resp = e.do(t, http.MethodGet, "/api/auth/me", short, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDisabledAccountIsForbidden(t *testing.T) {
	e := newEnv(t)

	e.register(t, "alice", "alice@example.com", "correct horse")
	token := e.login(t, "alice@example.com", "correct horse")

	var me struct {
		ID string `json:"id"`
	}
	resp := e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)

	require.NoError(t, e.auth.Store.Users().SetUserActive(t.Context(), me.ID, false))

	// Valid token, dead account: 403, distinct from the 401s
	resp = e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	var apiErr struct {
		Error string `json:"error"`
	}
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decode(t, resp, &apiErr)
	assert.Equal(t, "account_disabled", apiErr.Error)
}

func TestBlogFlow(t *testing.T) {
	e := newEnv(t)

	e.register(t, "alice", "alice@example.com", "correct horse")
	token := e.login(t, "alice@example.com", "correct horse")

	// Writes require a session
	resp := e.do(t, http.MethodPost, "/api/blog/categories", "", map[string]string{"name": "Go"})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var cat struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	resp = e.do(t, http.MethodPost, "/api/blog/categories", token, map[string]string{"name": "Go Notes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &cat)
	assert.Equal(t, "go-notes", cat.Slug)

	var tag struct {
		ID string `json:"id"`
	}
	resp = e.do(t, http.MethodPost, "/api/blog/tags", token, map[string]string{"name": "testing"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &tag)

	var post struct {
		ID        string `json:"id"`
		Slug      string `json:"slug"`
		Status    string `json:"status"`
		ViewCount int64  `json:"view_count"`
		Author    struct {
			Username string `json:"username"`
		} `json:"author"`
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	resp = e.do(t, http.MethodPost, "/api/blog/posts", token, map[string]any{
		"title":       "Testing in Go",
		"content":     "Write tests first.",
		"status":      "published",
		"category_id": cat.ID,
		"tag_ids":     []string{tag.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &post)
	assert.Equal(t, "testing-in-go", post.Slug)
	assert.Equal(t, "published", post.Status)
	assert.Equal(t, "alice", post.Author.Username)
	require.Len(t, post.Tags, 1)

	// Public read counts the view
	resp = e.do(t, http.MethodGet, "/api/blog/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &post)
	assert.Equal(t, int64(1), post.ViewCount)

	// Public list filtered by status
	resp = e.do(t, http.MethodGet, "/api/blog/posts?status=published", "", nil)
	var posts []json.RawMessage
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &posts)
	assert.Len(t, posts, 1)
}

func TestProjectTaskFlow(t *testing.T) {
	e := newEnv(t)

	e.register(t, "alice", "alice@example.com", "correct horse")
	token := e.login(t, "alice@example.com", "correct horse")

	var proj struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	resp := e.do(t, http.MethodPost, "/api/projects", token, map[string]string{
		"name": "Rebuild Backend",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &proj)
	assert.Equal(t, "planning", proj.Status)
	assert.Equal(t, "medium", proj.Priority)

	var task struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	resp = e.do(t, http.MethodPost, "/api/tasks", token, map[string]string{
		"project_id": proj.ID,
		"title":      "Design schema",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &task)
	assert.Equal(t, "todo", task.Status)

	resp = e.do(t, http.MethodPut, "/api/tasks/"+task.ID, token, map[string]string{
		"status": "done",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &task)
	assert.Equal(t, "done", task.Status)

	// Filtered listing
	resp = e.do(t, http.MethodGet, "/api/tasks?project_id="+proj.ID+"&status=done", token, nil)
	var tasks []json.RawMessage
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &tasks)
	assert.Len(t, tasks, 1)

	// Deleting the project takes its tasks with it
	resp = e.do(t, http.MethodDelete, "/api/projects/"+proj.ID, token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/api/tasks/"+task.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndBanner(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/api/health", "", nil)
	var health struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Checks.Database)

	resp = e.do(t, http.MethodGet, "/", "", nil)
	var banner struct {
		Service string `json:"service"`
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &banner)
	assert.Equal(t, "dashboard-api", banner.Service)
}
