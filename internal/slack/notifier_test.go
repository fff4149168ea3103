package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

func completedProject() *models.Project {
	p := models.NewProject("mvi_done", "u1", "An app for freelancers")
	p.Status = models.StatusComplete
	p.CurrentStep = models.StageComplete
	p.Context.MVIPackage = &models.MVIPackage{
		ProjectName:    "Freelance Invoice Management App",
		Summary:        "A app that helps freelancers with invoice management.",
		MarketAnalysis: models.MarketAnalysis{TAM: "$1.2T", GrowthRate: "15%"},
		MustHave:       []models.Feature{{Name: "Invoice Builder"}},
		TechStack:      models.TechStack{Frontend: "React", Backend: "Node.js", Database: "PostgreSQL", Hosting: "Vercel"},
	}
	return p
}

func fakeSlack(t *testing.T, posted *url.Values) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth.test":
			_, _ = w.Write([]byte(`{"ok":true,"user":"devbrain","user_id":"U123"}`))
		case "/chat.postMessage":
			assert.NoError(t, r.ParseForm())
			*posted = r.PostForm
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
		default:
			_, _ = w.Write([]byte(`{"ok":false,"error":"unknown_method"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNotifyComplete(t *testing.T) {
	var posted url.Values
	server := fakeSlack(t, &posted)

	client, err := NewClient(context.Background(), "xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	require.NoError(t, err)
	assert.Equal(t, "U123", client.GetBotID())

	notifier := NewNotifier(client, "C123")
	require.NoError(t, notifier.NotifyComplete(context.Background(), completedProject()))

	assert.Equal(t, "C123", posted.Get("channel"))
	assert.Contains(t, posted.Get("text"), "Freelance Invoice Management App")
	assert.Contains(t, posted.Get("blocks"), "Invoice Builder")
}

func TestNotifyCompleteWithoutPackage(t *testing.T) {
	var posted url.Values
	server := fakeSlack(t, &posted)

	client, err := NewClient(context.Background(), "xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	require.NoError(t, err)

	err = NewNotifier(client, "C123").NotifyComplete(context.Background(), models.NewProject("mvi_x", "u1", "idea"))
	assert.Error(t, err)
}

func TestCompletionBlocks(t *testing.T) {
	blocks := CompletionBlocks(completedProject())
	require.Len(t, blocks, 6)
	assert.Equal(t, slack.MBTHeader, blocks[0].BlockType())
	assert.Equal(t, slack.MBTDivider, blocks[3].BlockType())
	assert.Equal(t, slack.MBTContext, blocks[5].BlockType())
}

func TestNewClientAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
	}))
	defer server.Close()

	_, err := NewClient(context.Background(), "bad", slack.OptionAPIURL(server.URL+"/"))
	assert.Error(t, err)
}
