package output

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Progress wraps the stderr progress bar. A quiet Progress is inert,
// so call sites never branch.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a progress bar over total targets, or an inert
// one when quiet is set.
func NewProgress(total int, quiet bool) *Progress {
	if quiet {
		return &Progress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Probing targets"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() { os.Stderr.WriteString("\n") }),
	)
	return &Progress{bar: bar}
}

// Increment records one completed target.
func (p *Progress) Increment() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish closes out the bar display.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
