package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// barWidth is the number of slots in a progress bar, one per board cell.
const barWidth = 25

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ProgressBar draws "[#####    ]" as work completes. It redraws in place with
// backspaces, so it is only enabled on terminals.
type ProgressBar struct {
	w       io.Writer
	label   string
	enabled bool
	drawn   int
}

// NewProgressBar returns a bar titled label. A disabled bar only prints the
// label and a final "(Done)".
func NewProgressBar(w io.Writer, label string, enabled bool) *ProgressBar {
	return &ProgressBar{w: w, label: label, enabled: enabled}
}

// Start prints the label and the empty bar.
func (p *ProgressBar) Start() {
	fmt.Fprintf(p.w, "%s:\n", p.label)
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.w, "[%s]%s", strings.Repeat(" ", barWidth), strings.Repeat("\b", barWidth+1))
}

// Update fills the bar up to done/total.
func (p *ProgressBar) Update(done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	p.fill(min(done, total) * barWidth / total)
}

// Finish fills whatever is left and closes the bar.
func (p *ProgressBar) Finish() {
	if !p.enabled {
		fmt.Fprintln(p.w, "(Done)")
		return
	}
	p.fill(barWidth)
	fmt.Fprintln(p.w, "] (Done)")
}

func (p *ProgressBar) fill(target int) {
	if target <= p.drawn {
		return
	}
	fmt.Fprint(p.w, strings.Repeat("#", target-p.drawn))
	p.drawn = target
}
