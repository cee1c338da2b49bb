// Package domains loads the target list: one domain per line, blank
// lines and #-comments skipped, surrounding whitespace trimmed and
// duplicates dropped. The rest of the pipeline assumes exactly this
// normalization has already happened.
package domains

import (
	"fmt"
	"os"
	"strings"
)

// Load reads the domain list from path and returns the de-duplicated
// entries in file order. Scheme prefixes are stripped so that entries
// copied from browser bars or other tool output still work.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading domain list %s: %w", path, err)
	}
	return Normalize(strings.Split(string(data), "\n")), nil
}

// Normalize trims, filters and de-duplicates raw input lines.
func Normalize(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "https://")
		line = strings.TrimPrefix(line, "http://")
		line = strings.TrimSuffix(line, "/")
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
