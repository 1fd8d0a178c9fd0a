package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/timecode"
)

// ChatLog parses a chat export with one message per line, three tab-separated
// fields: timestamp, speaker label (optionally colon-suffixed), message text.
//
// Malformed lines are skipped rather than failing the run: fewer than three
// fields drops the line, and unlike captions a chat line has no display-only
// fallback, so a timestamp the codec rejects drops the line as well.
func ChatLog(r io.Reader) ([]model.Utterance, error) {
	scanner := bufio.NewScanner(r)
	utterances := make([]model.Utterance, 0)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}

		timestamp := strings.TrimSpace(parts[0])
		speaker := strings.TrimSpace(parts[1])
		speaker = strings.TrimSpace(strings.TrimSuffix(speaker, ":"))
		message := strings.TrimSpace(parts[2])

		secs, err := timecode.ToSeconds(timestamp)
		if err != nil {
			continue
		}

		utterances = append(utterances, model.Utterance{
			Kind:         model.KindChat,
			Timestamp:    timestamp,
			StartSeconds: &secs,
			Speaker:      speaker,
			Text:         message,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chat log: %w", err)
	}

	return utterances, nil
}
