package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-curator/internal/domain/entity"
)

func TestGenerator_Generate(t *testing.T) {
	provider := &fakeProvider{response: `{
		"short_form": "Fees tell the real story.",
		"thread_form": "1/ Fees spiked.\n2/ Here is why.",
		"long_form": "A longer perspective on fee markets."
	}`}
	gen := NewGenerator(provider, "Write plainly.")

	set, err := gen.Generate(context.Background(), entity.Article{
		URL:    "https://example.com/fees",
		Title:  "Fee market heats up",
		Source: "Bitcoin Wire",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fees tell the real story.", set.ShortForm)
	assert.Equal(t, "1/ Fees spiked.\n2/ Here is why.", set.ThreadForm)
	assert.Equal(t, "A longer perspective on fee markets.", set.LongForm)
	assert.False(t, set.Empty())

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Write plainly.")
	assert.Contains(t, provider.prompts[0], "https://example.com/fees")
}

func TestGenerator_Generate_PartialVariants(t *testing.T) {
	provider := &fakeProvider{response: `{"short_form": "Just the short one."}`}
	gen := NewGenerator(provider, "")

	set, err := gen.Generate(context.Background(), entity.Article{URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.Equal(t, "Just the short one.", set.ShortForm)
	assert.Empty(t, set.ThreadForm)
	assert.Empty(t, set.LongForm)
	assert.False(t, set.Empty())
}

func TestGenerator_Generate_MalformedResponse(t *testing.T) {
	gen := NewGenerator(&fakeProvider{response: "not json at all"}, "")

	set, err := gen.Generate(context.Background(), entity.Article{URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestGenerator_Generate_ProviderError(t *testing.T) {
	providerErr := errors.New("rate limited")
	gen := NewGenerator(&fakeProvider{err: providerErr}, "")

	_, err := gen.Generate(context.Background(), entity.Article{URL: "https://example.com/a"})
	assert.ErrorIs(t, err, providerErr)
}
