package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todoweb/internal/store"
	"todoweb/internal/web"
)

func newTestServer() (*web.Server, *store.Memory) {
	st := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return web.New(st, logger), st
}

func postTask(t *testing.T, srv *web.Server, task string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"task": {task}}
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestIndex_EmptyList(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<form") {
		t.Error("expected page to contain the add form")
	}
	if !strings.Contains(body, `name="task"`) {
		t.Error("expected form field named task")
	}
}

func TestIndex_ShowsTasksInOrder(t *testing.T) {
	srv, _ := newTestServer()
	postTask(t, srv, "first")
	postTask(t, srv, "second")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	body := rec.Body.String()
	i := strings.Index(body, "<li>first</li>")
	j := strings.Index(body, "<li>second</li>")
	if i < 0 || j < 0 {
		t.Fatalf("expected both tasks in page, got:\n%s", body)
	}
	if i > j {
		t.Error("tasks rendered out of insertion order")
	}
}

func TestIndex_EscapesHTML(t *testing.T) {
	srv, _ := newTestServer()
	postTask(t, srv, "<script>alert(1)</script>")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("task text rendered unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped task text, got:\n%s", body)
	}
}

func TestAdd_RedirectsToIndex(t *testing.T) {
	srv, _ := newTestServer()

	rec := postTask(t, srv, "buy milk")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestAdd_AppendsToStore(t *testing.T) {
	srv, st := newTestServer()

	postTask(t, srv, "buy milk")

	tasks, err := st.List(t.Context())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 || tasks[len(tasks)-1] != "buy milk" {
		t.Errorf("expected [buy milk], got %q", tasks)
	}
}

func TestAdd_MissingFieldAppendsEmptyEntry(t *testing.T) {
	srv, st := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	tasks, _ := st.List(t.Context())
	if len(tasks) != 1 || tasks[0] != "" {
		t.Errorf("expected single empty entry, got %q", tasks)
	}
}

func TestTasks_ReturnsJSONArrayInOrder(t *testing.T) {
	srv, _ := newTestServer()
	postTask(t, srv, "a")
	postTask(t, srv, "b")

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `["a","b"]` {
		t.Errorf(`expected ["a","b"], got %s`, got)
	}
}

func TestTasks_EmptyListIsEmptyArray(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/add", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET /add, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/tasks", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /tasks, got %d", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
