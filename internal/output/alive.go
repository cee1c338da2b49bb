package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/xvander/hostpulse/internal/scanner"
)

// WriteAliveList writes the alive-classified domains to path, one per
// line, no header. The list feeds straight into other tooling, so it
// carries nothing but the domains.
func WriteAliveList(path string, alive []scanner.Record) error {
	var sb strings.Builder
	for _, rec := range alive {
		sb.WriteString(rec.Domain)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing alive list: %w", err)
	}
	return nil
}
