// Package parse turns caption transcripts and chat logs into utterance records.
// Both parsers consume any io.Reader, so callers can feed files, buffers or
// upload streams uniformly.
package parse

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/timecode"
)

const (
	vttHeaderMarker = "WEBVTT"
	rangeArrow      = "-->"
)

var blockIndexRegex = regexp.MustCompile(`^\d+$`)

// Captions parses a WebVTT-style caption document: an optional WEBVTT header
// block, then blocks separated by a blank line. Each block carries an optional
// numeric index line, a "start --> end" range line and zero or more text lines.
//
// Malformed range lines are tolerated: the block still yields an utterance,
// just without timing, and it will sort by the merge tie-break rule. A start
// timestamp the codec cannot parse is kept verbatim for display with absent
// StartSeconds.
func Captions(r io.Reader) ([]model.Utterance, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(text), "\n\n")

	// Drop the header block if present.
	if len(blocks) > 0 && strings.HasPrefix(strings.TrimSpace(blocks[0]), vttHeaderMarker) {
		blocks = blocks[1:]
	}

	utterances := make([]model.Utterance, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		// A purely numeric first line is the block index; the range line
		// then shifts to the second line.
		blockIndex := ""
		rangeLine := strings.TrimSpace(lines[0])
		textLines := lines[1:]
		if blockIndexRegex.MatchString(rangeLine) {
			blockIndex = rangeLine
			rangeLine = ""
			textLines = nil
			if len(lines) > 1 {
				rangeLine = strings.TrimSpace(lines[1])
				textLines = lines[2:]
			}
		}

		var start, end string
		rangeParts := strings.Split(rangeLine, rangeArrow)
		if len(rangeParts) == 2 {
			start = strings.TrimSpace(rangeParts[0])
			end = strings.TrimSpace(rangeParts[1])
		}

		var startSeconds *float64
		if start != "" {
			if secs, err := timecode.ToSeconds(start); err == nil {
				startSeconds = &secs
			}
		}

		speaker, message := splitSpeaker(strings.TrimSpace(strings.Join(trimLines(textLines), " ")))

		utterances = append(utterances, model.Utterance{
			Kind:         model.KindCaption,
			BlockIndex:   blockIndex,
			Timestamp:    start,
			End:          end,
			StartSeconds: startSeconds,
			Speaker:      speaker,
			Text:         message,
		})
	}

	return utterances, nil
}

// splitSpeaker applies the first-colon speaker heuristic: the substring before
// the first colon is the speaker, the remainder is the text. Text that
// legitimately contains a colon with no speaker label misfires here; this is
// documented behavior of the caption format.
func splitSpeaker(text string) (speaker, message string) {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return "", text
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
}

func trimLines(lines []string) []string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimSpace(line)
	}
	return trimmed
}
