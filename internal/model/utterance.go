package model

// Kind identifies the source record type of an utterance
type Kind string

const (
	KindCaption Kind = "transcript" // Spoken segment from the caption transcript
	KindChat    Kind = "chat"       // Typed message from the chat log
)

// Utterance is the unifying record produced by both parsers.
// Parsers create it, the annotation stage fills Normalized, Category and
// Relevancy, and it is never mutated after that.
type Utterance struct {
	Kind       Kind   `json:"type"`
	BlockIndex string `json:"block_index,omitempty"` // Caption block index, empty when the block carried none
	Timestamp  string `json:"timestamp"`             // Original start timestamp, preserved verbatim
	End        string `json:"end,omitempty"`         // End timestamp, captions only
	Speaker    string `json:"speaker,omitempty"`
	Text       string `json:"text"`

	// StartSeconds is nil when the source timestamp could not be parsed.
	// Merge order is defined solely by this field (nil sorts as 0).
	StartSeconds *float64 `json:"time,omitempty"`

	Normalized string   `json:"stemmed_message,omitempty"`
	Category   string   `json:"assigned_category,omitempty"`
	Relevancy  *float64 `json:"lesson_relevancy,omitempty"`
}

// Seconds returns the merge key: StartSeconds, or 0 when timing is absent.
func (u *Utterance) Seconds() float64 {
	if u.StartSeconds == nil {
		return 0
	}
	return *u.StartSeconds
}

// Timeline is the enriched, merged result returned by the service layer.
type Timeline struct {
	Entries     []Utterance `json:"entries"`
	Speakers    []string    `json:"speakers"`
	Roster      []string    `json:"roster,omitempty"`
	Categorized bool        `json:"categorized"`
	Scored      bool        `json:"scored"`
}

// CollectSpeakers returns the unique non-empty speaker names in first-seen order.
func CollectSpeakers(entries []Utterance) []string {
	seen := make(map[string]bool)
	var speakers []string
	for i := range entries {
		name := entries[i].Speaker
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		speakers = append(speakers, name)
	}
	return speakers
}
