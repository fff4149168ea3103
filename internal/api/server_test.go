package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/linear"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
	"github.com/bilal-bim/devbrain-ai/internal/session"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(context.Context, string, []agents.Message) (string, error) {
	return f.reply, f.err
}

// recordingLLM keeps the messages of the last completion request
type recordingLLM struct {
	mu       sync.Mutex
	messages []agents.Message
}

func (f *recordingLLM) Name() string { return "recording" }

func (f *recordingLLM) Complete(_ context.Context, _ string, messages []agents.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append([]agents.Message(nil), messages...)
	return "reply", nil
}

func (f *recordingLLM) last() agents.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

type fakeLinear struct {
	inputs []linear.IssueInput
}

func (f *fakeLinear) CreateIssue(_ context.Context, input linear.IssueInput) (*linear.Issue, error) {
	f.inputs = append(f.inputs, input)
	return &linear.Issue{ID: "i", Title: input.Title}, nil
}

func (f *fakeLinear) Teams(context.Context) ([]linear.Team, error) {
	return []linear.Team{{ID: "t1", Key: "DEV", Name: "Dev"}}, nil
}

type recordingNotifier struct {
	done chan string
}

func (n *recordingNotifier) NotifyComplete(_ context.Context, p *models.Project) error {
	n.done <- p.ID
	return nil
}

type testEnv struct {
	server  *Server
	handler http.Handler
	store   *session.MemoryStore
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	store := session.NewMemoryStore()
	opts.Generator = mvi.NewGenerator(store)
	opts.Lister = store
	if opts.Origins == nil {
		opts.Origins = []string{"http://localhost:3000"}
	}
	srv := New(opts)
	return &testEnv{server: srv, handler: srv.Handler(), store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func (e *testEnv) start(t *testing.T) string {
	t.Helper()
	rec, body := e.do(t, http.MethodPost, "/api/mvi/start", map[string]string{
		"userId": "u1",
		"idea":   "An app for freelancers to manage invoices",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return body["sessionId"].(string)
}

func TestStartSession(t *testing.T) {
	env := newTestEnv(t, Options{Advisor: agents.NewAdvisor(&fakeLLM{reply: "A $1.2B total addressable market with 15% annual growth."}, "", 0)})

	rec, body := env.do(t, http.MethodPost, "/api/mvi/start", map[string]string{
		"userId": "u1",
		"idea":   "An app for freelancers to manage invoices",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["sessionId"])
	assert.Equal(t, "A $1.2B total addressable market with 15% annual growth.", body["aiResponse"])

	project := body["project"].(map[string]any)
	assert.Equal(t, "ideaCapture", project["currentStep"])
	assert.Equal(t, "analyzing", project["status"])

	viz := body["visualization"].(map[string]any)
	assert.Equal(t, 1.2e9, viz["tam"].(map[string]any)["value"])
	assert.Equal(t, 15.0, viz["growth"])
	assert.Nil(t, viz["personas"])

	stored, err := env.store.Get(context.Background(), body["sessionId"].(string))
	require.NoError(t, err)
	require.Len(t, stored.Context.ConversationHistory, 2)
	assert.Equal(t, "assistant", stored.Context.ConversationHistory[1].Role)
}

func TestStartSessionRequiresIdea(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec, body := env.do(t, http.MethodPost, "/api/mvi/start", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	rec, body = env.do(t, http.MethodPost, "/api/mvi/start", map[string]string{
		"userId": strings.Repeat("u", maxUserIDLen+1),
		"idea":   "A tool",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "userId")
	assert.Zero(t, env.store.Len())

	req := httptest.NewRequest(http.MethodPost, "/api/mvi/start", strings.NewReader("{not json"))
	rec2 := httptest.NewRecorder()
	env.handler.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestContinueFlowUsesFallbackReplies(t *testing.T) {
	env := newTestEnv(t, Options{Advisor: agents.NewAdvisor(&fakeLLM{err: errors.New("provider down")}, "", 0)})
	id := env.start(t)

	rec, body := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{
		"sessionId": id,
		"response":  "Creative freelancers",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "userPersonaDiscovery", body["project"].(map[string]any)["currentStep"])
	assert.Equal(t, agents.FallbackReply(models.StageUserPersonaDiscovery), body["aiResponse"])

	result := body["result"].(map[string]any)
	assert.Equal(t, "market_analysis", result["visualization"].(map[string]any)["type"])

	_, body = env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{
		"sessionId": id,
		"response":  "Designers",
	})
	assert.Equal(t, "competitiveIntelligence", body["project"].(map[string]any)["currentStep"])
}

func TestContinueValidation(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec, _ := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{"sessionId": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{
		"sessionId": "nonexistent-id",
		"response":  "x",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Session not found", body["error"])
	assert.Zero(t, env.store.Len())
}

func TestCompletionNotifiesOnce(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan string, 2)}
	env := newTestEnv(t, Options{Notifier: notifier})
	id := env.start(t)

	for i := 0; i < len(models.Stages)-1; i++ {
		rec, _ := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{"sessionId": id, "response": "ok"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, id, <-notifier.done)

	rec, body := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{"sessionId": id, "response": "again"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "complete", body["project"].(map[string]any)["currentStep"])
	assert.Empty(t, notifier.done)
}

func TestFollowUpAfterCompletionReachesProvider(t *testing.T) {
	llm := &recordingLLM{}
	env := newTestEnv(t, Options{Advisor: agents.NewAdvisor(llm, "", 0)})
	id := env.start(t)

	for i := 0; i < len(models.Stages)-1; i++ {
		rec, _ := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{"sessionId": id, "response": "ok"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{
		"sessionId": id,
		"response":  "What pricing should I use?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reply", body["aiResponse"])
	assert.Equal(t, agents.Message{Role: "user", Content: "What pricing should I use?"}, llm.last())

	stored, err := env.store.Get(context.Background(), id)
	require.NoError(t, err)
	history := stored.Context.ConversationHistory
	require.GreaterOrEqual(t, len(history), 2)
	assert.Equal(t, "user", history[len(history)-2].Role)
	assert.Equal(t, "What pricing should I use?", history[len(history)-2].Content)
	assert.Equal(t, "assistant", history[len(history)-1].Role)
	assert.Equal(t, models.StageComplete, stored.CurrentStep)
}

func TestExportAndDownload(t *testing.T) {
	env := newTestEnv(t, Options{})
	id := env.start(t)

	rec, body := env.do(t, http.MethodPost, "/api/mvi/export", map[string]string{"sessionId": id, "format": "github"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "github", body["format"])
	assert.Equal(t, "/api/mvi/download/"+id+"/github", body["downloadUrl"])
	assert.Len(t, body["files"], 6)

	req := httptest.NewRequest(http.MethodGet, "/api/mvi/download/"+id+"/github", nil)
	dl := httptest.NewRecorder()
	env.handler.ServeHTTP(dl, req)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "application/zip", dl.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(dl.Body.Bytes()), int64(dl.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 6)
}

func TestExportErrors(t *testing.T) {
	env := newTestEnv(t, Options{})
	id := env.start(t)

	rec, _ := env.do(t, http.MethodPost, "/api/mvi/export", map[string]string{"sessionId": id, "format": "docx"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/mvi/export", map[string]string{"sessionId": "missing", "format": "mcp"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/mvi/download/missing/mcp", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionGetDeleteAndList(t *testing.T) {
	env := newTestEnv(t, Options{})
	id := env.start(t)

	rec, body := env.do(t, http.MethodGet, "/api/mvi/session/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, body["project"].(map[string]any)["id"])

	rec, body = env.do(t, http.MethodGet, "/api/mvi/sessions?userId=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["sessions"], 1)

	rec, _ = env.do(t, http.MethodDelete, "/api/mvi/session/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/mvi/session/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = env.do(t, http.MethodDelete, "/api/mvi/session/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinearSync(t *testing.T) {
	env := newTestEnv(t, Options{})
	id := env.start(t)

	rec, body := env.do(t, http.MethodPost, "/api/mvi/linear", map[string]string{"sessionId": id, "teamId": "t1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["success"])

	fake := &fakeLinear{}
	env = newTestEnv(t, Options{Linear: fake})
	id = env.start(t)
	for i := 0; i < 4; i++ {
		env.do(t, http.MethodPost, "/api/mvi/continue", map[string]string{"sessionId": id, "response": "ok"})
	}

	rec, body = env.do(t, http.MethodPost, "/api/mvi/linear", map[string]string{"sessionId": id, "teamId": "t1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["issues"])
	assert.NotEmpty(t, fake.inputs)
	assert.Equal(t, "t1", fake.inputs[0].TeamID)

	rec, body = env.do(t, http.MethodGet, "/api/linear/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["teams"], 1)
}

func TestLibraryEndpoints(t *testing.T) {
	env := newTestEnv(t, Options{})
	id := env.start(t)

	rec, body := env.do(t, http.MethodGet, "/api/library/features?category=auth", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["features"], 2)

	rec, body = env.do(t, http.MethodGet, "/api/library/pack/saas-starter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SaaS Starter", body["pack"].(map[string]any)["name"])

	rec, _ = env.do(t, http.MethodGet, "/api/library/pack/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = env.do(t, http.MethodPost, "/api/library/add-to-project", map[string]string{"sessionId": id, "featureId": "invoicing"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["features"], 1)

	rec, _ = env.do(t, http.MethodPost, "/api/library/add-to-project", map[string]string{"sessionId": id, "featureId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = env.do(t, http.MethodPost, "/api/library/add-to-project", map[string]string{"sessionId": "missing", "featureId": "invoicing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec, body := env.do(t, http.MethodPost, "/api/ai/chat", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, false, body["success"])

	env = newTestEnv(t, Options{Advisor: agents.NewAdvisor(&fakeLLM{reply: "hello"}, "", 0)})
	rec, body = env.do(t, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "hi",
		"context": map[string]string{"industry": "freelance"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", body["response"])

	rec, _ = env.do(t, http.MethodPost, "/api/ai/chat", map[string]string{"message": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContextText(t *testing.T) {
	assert.Equal(t, "", contextText(nil))
	assert.Equal(t, "", contextText(json.RawMessage("null")))
	assert.Equal(t, "plain", contextText(json.RawMessage(`"plain"`)))
	assert.Equal(t, `{"a":1}`, contextText(json.RawMessage(`{"a":1}`)))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{StoreName: "memory"})

	rec, body := env.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "none", body["provider"])
	assert.Equal(t, "memory", body["store"])
	assert.Equal(t, "ok", body["storeStatus"])
	assert.Len(t, body["stages"], 7)
}

func TestHealthReportsStoreFailure(t *testing.T) {
	env := newTestEnv(t, Options{
		StoreName:  "postgres",
		StoreCheck: func(context.Context) error { return errors.New("connection refused") },
	})

	rec, body := env.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unavailable", body["storeStatus"])
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/mvi/start", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
