package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse/internal/model"
)

const captionDoc = `WEBVTT

1
00:00:05.000 --> 00:00:07.000
Teacher: Today we study algebra

00:00:12.000 --> 00:00:14.000
Student: I have a question
`

const chatDoc = "00:00:02\tBob:\tgood morning\n00:00:20\tAlice:\tpainting is fun\n"

// fakeEmbedder is safe for concurrent use by annotation workers.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Name() string  { return "fake" }
func (f *fakeEmbedder) Model() string { return "fake-model" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if strings.Contains(text, "algebra") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func newTestPipeline(embedder *fakeEmbedder) *Pipeline {
	cfg := model.DefaultConfig()
	if embedder == nil {
		return New(cfg, nil, zerolog.Nop())
	}
	return New(cfg, embedder, zerolog.Nop())
}

func TestRun_RequiresBothSources(t *testing.T) {
	p := newTestPipeline(nil)

	_, err := p.Run(context.Background(), Inputs{Chat: strings.NewReader(chatDoc)})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = p.Run(context.Background(), Inputs{Captions: strings.NewReader(captionDoc)})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestRun_MergedAndNormalized(t *testing.T) {
	p := newTestPipeline(nil)

	tl, err := p.Run(context.Background(), Inputs{
		Captions: strings.NewReader(captionDoc),
		Chat:     strings.NewReader(chatDoc),
	})
	require.NoError(t, err)
	require.Len(t, tl.Entries, 4)

	// Merge order: chat 2s, caption 5s, caption 12s, chat 20s.
	assert.Equal(t, model.KindChat, tl.Entries[0].Kind)
	assert.Equal(t, "good morning", tl.Entries[0].Text)
	assert.Equal(t, model.KindCaption, tl.Entries[1].Kind)
	assert.Equal(t, "Teacher", tl.Entries[1].Speaker)
	assert.Equal(t, model.KindChat, tl.Entries[3].Kind)

	// Every entry carries its normalized form.
	for _, e := range tl.Entries {
		assert.NotEmpty(t, e.Normalized)
	}

	assert.False(t, tl.Categorized)
	assert.False(t, tl.Scored)
	for _, e := range tl.Entries {
		assert.Empty(t, e.Category)
		assert.Nil(t, e.Relevancy)
	}

	assert.Equal(t, []string{"Bob", "Teacher", "Student", "Alice"}, tl.Speakers)
}

func TestRun_WithRules(t *testing.T) {
	p := newTestPipeline(nil)

	tl, err := p.Run(context.Background(), Inputs{
		Captions: strings.NewReader(captionDoc),
		Chat:     strings.NewReader(chatDoc),
		Rules:    strings.NewReader("1,algebra,unigram,math\n2,painting,unigram,art\n"),
	})
	require.NoError(t, err)
	require.True(t, tl.Categorized)

	byText := map[string]string{}
	for _, e := range tl.Entries {
		byText[e.Text] = e.Category
	}

	assert.Equal(t, "math", byText["Today we study algebra"])
	assert.Equal(t, "art", byText["painting is fun"])
	assert.Equal(t, "uncategorized", byText["good morning"])
}

func TestRun_WithReference(t *testing.T) {
	embedder := &fakeEmbedder{}
	p := newTestPipeline(embedder)

	tl, err := p.Run(context.Background(), Inputs{
		Captions:  strings.NewReader(captionDoc),
		Chat:      strings.NewReader(chatDoc),
		Reference: strings.NewReader("algebra lesson plan"),
	})
	require.NoError(t, err)
	require.True(t, tl.Scored)

	for _, e := range tl.Entries {
		require.NotNil(t, e.Relevancy, "entry %q must carry a relevancy score", e.Text)
	}

	// Reference once plus one call per utterance.
	assert.Equal(t, 1+len(tl.Entries), embedder.calls)
}

func TestRun_ReferenceWithoutEmbedder(t *testing.T) {
	p := newTestPipeline(nil)

	_, err := p.Run(context.Background(), Inputs{
		Captions:  strings.NewReader(captionDoc),
		Chat:      strings.NewReader(chatDoc),
		Reference: strings.NewReader("lesson plan"),
	})
	require.Error(t, err)
}

func TestRun_EmbedderFailureFailsRun(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("provider down")}
	p := newTestPipeline(embedder)

	_, err := p.Run(context.Background(), Inputs{
		Captions:  strings.NewReader(captionDoc),
		Chat:      strings.NewReader(chatDoc),
		Reference: strings.NewReader("lesson plan"),
	})
	require.Error(t, err)
}

func TestRun_WithRoster(t *testing.T) {
	p := newTestPipeline(nil)

	tl, err := p.Run(context.Background(), Inputs{
		Captions: strings.NewReader(captionDoc),
		Chat:     strings.NewReader(chatDoc),
		Roster:   strings.NewReader("Alice\nBob\nCarol\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, tl.Roster)
}
