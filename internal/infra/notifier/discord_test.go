package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordNotifier_NotifyRunSummary(t *testing.T) {
	var received discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordConfig{
		Enabled:    true,
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	})

	err := n.NotifyRunSummary(context.Background(), testSummary())
	require.NoError(t, err)
	require.Len(t, received.Embeds, 1)
	assert.Equal(t, "Curator run finished", received.Embeds[0].Title)
	assert.Contains(t, received.Embeds[0].Description, "1m30s")
}

func TestBuildDiscordPayload(t *testing.T) {
	s := testSummary()
	s.DryRun = true
	payload := buildDiscordPayload(s)

	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]
	assert.Equal(t, "Curator run finished (dry run)", embed.Title)

	byName := make(map[string]string)
	for _, f := range embed.Fields {
		byName[f.Name] = f.Value
	}
	assert.Equal(t, "40", byName["Fetched"])
	assert.Equal(t, "12", byName["New"])
	assert.Equal(t, "3 / 5 / 4", byName["Ready / Review / Archive"])
}

func TestNoOpNotifier(t *testing.T) {
	n := NewNoOpNotifier()
	assert.NoError(t, n.NotifyRunSummary(context.Background(), RunSummary{}))
}
