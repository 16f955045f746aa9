package main

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/tos-network/bsgs/crypto/dlog"
	"golang.org/x/term"
)

const (
	defaultBarWidth = 40
	// barOverhead is what the description, counters and rate take up
	// next to the bar itself.
	barOverhead = 70
)

// progressTracker draws one progress bar per search phase. It is driven from
// the searching goroutine only.
type progressTracker struct {
	out      io.Writer
	width    int
	throttle time.Duration
	bar      *progressbar.ProgressBar
}

func newProgressTracker(out io.Writer) *progressTracker {
	t := &progressTracker{out: out, width: defaultBarWidth, throttle: time.Second}
	if width, ok := terminalWidth(out); ok {
		t.throttle = 100 * time.Millisecond
		if width-barOverhead > defaultBarWidth {
			t.width = width - barOverhead
		}
	}
	return t
}

// terminalWidth reports the column count of out if it is a terminal.
func terminalWidth(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, false
	}
	return width, true
}

func (t *progressTracker) Begin(phase dlog.Phase, total uint64) {
	t.bar = progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(t.out),
		progressbar.OptionSetDescription(phase.String()),
		progressbar.OptionSetWidth(t.width),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(t.throttle),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(t.out, "\n")
		}),
	)
}

func (t *progressTracker) Advance(n uint64) {
	if t.bar != nil {
		t.bar.Add64(int64(n))
	}
}

// Finish completes the bar of the current phase. The giant-step phase may end
// early on a match; its bar is filled all the same.
func (t *progressTracker) Finish() {
	if t.bar != nil {
		t.bar.Finish()
		t.bar = nil
	}
}
