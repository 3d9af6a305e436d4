// Package progress animates a liveness indicator next to long-running
// blocking external calls. It is cosmetic only: it carries no data and its
// lifetime is bounded by the call it decorates.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner wraps a terminal spinner. In CI environments it stays silent.
type Spinner struct {
	s *spinner.Spinner
}

// Start begins animating with the given message. The caller must Stop
// before inspecting the result of the call the spinner decorates.
func Start(message string) *Spinner {
	sp := &Spinner{}
	if os.Getenv("CI") == "true" {
		return sp
	}
	sp.s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.s.Suffix = " " + message
	_ = sp.s.Color("cyan", "bold")
	sp.s.Start()
	return sp
}

// Stop halts the animation and, when done is non-empty, prints a completion
// line. Stop returns only after the spinner goroutine has been stopped, so
// the indicator can never interleave with the caller's result handling.
func (sp *Spinner) Stop(done string) {
	if sp.s != nil {
		sp.s.Stop()
	}
	if done != "" {
		fmt.Printf("%s %s\n", color.GreenString("✔"), done)
	}
}
