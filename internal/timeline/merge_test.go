package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse/internal/model"
)

func utt(kind model.Kind, secs float64, text string) model.Utterance {
	return model.Utterance{Kind: kind, StartSeconds: &secs, Text: text}
}

func TestMerge_OrdersByTime(t *testing.T) {
	captions := []model.Utterance{utt(model.KindCaption, 5.0, "caption at five")}
	chat := []model.Utterance{utt(model.KindChat, 2.0, "chat at two")}

	merged := Merge(captions, chat)
	require.Len(t, merged, 2)
	assert.Equal(t, "chat at two", merged[0].Text)
	assert.Equal(t, "caption at five", merged[1].Text)
}

func TestMerge_StableOnTies(t *testing.T) {
	captions := []model.Utterance{
		utt(model.KindCaption, 3.0, "caption a"),
		utt(model.KindCaption, 3.0, "caption b"),
	}
	chat := []model.Utterance{utt(model.KindChat, 3.0, "chat c")}

	merged := Merge(captions, chat)
	require.Len(t, merged, 3)

	// Captions precede chat in the concatenation, and per-source order holds.
	assert.Equal(t, "caption a", merged[0].Text)
	assert.Equal(t, "caption b", merged[1].Text)
	assert.Equal(t, "chat c", merged[2].Text)
}

func TestMerge_AbsentTimingSortsFirst(t *testing.T) {
	captions := []model.Utterance{
		{Kind: model.KindCaption, Text: "untimed"},
		utt(model.KindCaption, 1.0, "timed"),
	}

	merged := Merge(captions, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "untimed", merged[0].Text)
	assert.Equal(t, "timed", merged[1].Text)
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}
