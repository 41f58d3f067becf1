package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/doeshing/clicra-go/internal/ports"
)

// Renderer writes pipeline output to the terminal. Fenced-block lines are
// highlighted green, status banners yellow, verbose echo dim on stderr.
type Renderer struct {
	out       io.Writer
	errOut    io.Writer
	spinner   *Spinner
	highlight *color.Color
	banner    *color.Color
	dim       *color.Color
}

// NewRenderer builds a renderer. The spinner is shown on errOut while
// waiting for the model's first line; pass withSpinner=false when stderr is
// not a terminal.
func NewRenderer(out, errOut io.Writer, withSpinner bool) *Renderer {
	r := &Renderer{
		out:       out,
		errOut:    errOut,
		highlight: color.New(color.FgGreen, color.Bold),
		banner:    color.New(color.FgYellow, color.Bold),
		dim:       color.New(color.Faint),
	}
	if withSpinner {
		r.spinner = NewSpinner(errOut)
	}
	return r
}

func (r *Renderer) Print(line string) {
	r.Thinking(false)
	fmt.Fprintln(r.out, line)
}

func (r *Renderer) Highlight(line string) string {
	return r.highlight.Sprint(line)
}

func (r *Renderer) Banner(text string) {
	r.Thinking(false)
	fmt.Fprintf(r.out, "\n%s\n\n", r.banner.Sprint(text))
}

func (r *Renderer) Verbose(text string) {
	fmt.Fprintln(r.errOut, r.dim.Sprint(text))
}

func (r *Renderer) Thinking(active bool) {
	if r.spinner == nil {
		return
	}
	if active {
		r.spinner.Start()
	} else {
		r.spinner.Stop()
	}
}

var _ ports.Renderer = (*Renderer)(nil)
