package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/classpulse/classpulse/internal/model"
)

// WriteOptions selects the optional trailing columns. Either both flags hold
// for every row of a run or the column is absent entirely; there is no
// per-row mode.
type WriteOptions struct {
	IncludeCategory  bool
	IncludeRelevancy bool
}

// WriteCSV renders the merged timeline in merge order with the fixed column
// contract: type, block_index, timestamp, time, end, speaker, message,
// stemmed_message, then assigned_category and lesson_relevancy when the
// corresponding annotation stage ran.
func WriteCSV(w io.Writer, entries []model.Utterance, opts WriteOptions) error {
	header := []string{"type", "block_index", "timestamp", "time", "end", "speaker", "message", "stemmed_message"}
	if opts.IncludeCategory {
		header = append(header, "assigned_category")
	}
	if opts.IncludeRelevancy {
		header = append(header, "lesson_relevancy")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range entries {
		e := &entries[i]

		row := []string{
			string(e.Kind),
			e.BlockIndex,
			e.Timestamp,
			formatSeconds(e.StartSeconds),
			e.End,
			e.Speaker,
			e.Text,
			e.Normalized,
		}
		if opts.IncludeCategory {
			row = append(row, e.Category)
		}
		if opts.IncludeRelevancy {
			row = append(row, formatSeconds(e.Relevancy))
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatSeconds(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
