package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressWriter reports whether w is an interactive terminal worth
// drawing a progress bar on. Pipes and CI logs stay clean.
func progressWriter(w io.Writer) (io.Writer, bool) {
	file, ok := w.(*os.File)
	if !ok {
		return nil, false
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, false
	}
	return file, true
}

func newSpeakerBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Deduplicating per speaker"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
