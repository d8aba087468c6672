package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display reports the progress of named steps.
// The spinner only runs when the output is a terminal; otherwise each step
// prints a single result line.
type Display struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	step    string
}

// NewDisplay creates a display writing to out.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// StartStep begins a step. Any step still running is stopped first.
func (d *Display) StartStep(name string) {
	d.stopSpinner()
	d.step = name
	if !d.caps.IsTTY {
		return
	}
	d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(d.out))
	d.spin.Suffix = " " + name
	d.spin.Start()
}

// CompleteStep marks the current step as succeeded.
func (d *Display) CompleteStep(detail string) {
	d.finish(d.symbols.Checkmark, color.FgGreen, detail)
}

// FailStep marks the current step as failed.
func (d *Display) FailStep(err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	d.finish(d.symbols.Failure, color.FgRed, detail)
}

func (d *Display) finish(symbol string, attr color.Attribute, detail string) {
	d.stopSpinner()
	if d.step == "" {
		return
	}
	if d.caps.SupportsColor {
		symbol = color.New(attr).Sprint(symbol)
	}
	line := fmt.Sprintf("%s %s", symbol, d.step)
	if detail != "" {
		line += ": " + detail
	}
	fmt.Fprintln(d.out, line)
	d.step = ""
}

func (d *Display) stopSpinner() {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
}
