package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Roster reads a roster artifact, one participant name per line. Blank lines
// and duplicates are dropped; order is preserved. The roster is not used by
// the core pipeline, only carried through for downstream aggregation.
func Roster(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]bool)
	var names []string

	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	return names, nil
}
