// Package console renders engine results as text and drives the
// interactive prompt. The core packages produce data; everything printed
// to the user happens here.
package console

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chazu/implicit/pkg/engine"
	"github.com/glycerine/liner"
)

const (
	bannerText = `implicit — linear primitives console
lines:       a1*x + a2*y + a0 = 0
hyperplanes: a1*x1 + a2*x2 + a3*x3 + a4*x4 + a0 = 0
type expressions at the prompt; :reset clears the buffer, :quit exits.`

	footerText = "goodbye."
)

// Console evaluates script source and writes formatted reports.
type Console struct {
	engine *engine.Engine
	out    io.Writer
}

// New creates a console that writes to out.
func New(out io.Writer) *Console {
	return &Console{
		engine: engine.NewEngine(),
		out:    out,
	}
}

// Banner prints the start-up banner.
func (c *Console) Banner() {
	fmt.Fprintln(c.out, bannerText)
}

// Footer prints the shutdown footer.
func (c *Console) Footer() {
	fmt.Fprintln(c.out, footerText)
}

// Eval evaluates source and prints the result. It reports false when the
// evaluation produced errors, fatal or otherwise; errors are printed, not
// returned, so a REPL loop can simply continue.
func (c *Console) Eval(source string) bool {
	result, evalErrs, err := c.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("evaluate fatal error: %v", err)
		fmt.Fprintf(c.out, "error: %v\n", err)
		return false
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(c.out, "error: %s\n", e.Error())
		}
		return false
	}

	for _, line := range result.Output {
		fmt.Fprintln(c.out, line)
	}
	if result.Value != "" {
		fmt.Fprintf(c.out, "=> %s\n", result.Value)
	}
	fmt.Fprintf(c.out, "owned %d of %d created\n", result.Owned, result.Created)
	return true
}

// Repl runs the interactive prompt until :quit or EOF. Each entry is
// appended to a buffer and the whole buffer is re-evaluated, so earlier
// definitions stay visible even though every evaluation runs in a fresh
// session.
func (c *Console) Repl() {
	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	c.Banner()
	defer c.Footer()

	var buffer []string
	for {
		input, err := rl.Prompt("implicit> ")
		if err != nil {
			// io.EOF on ctrl-d, ErrPromptAborted on ctrl-c.
			fmt.Fprintln(c.out)
			return
		}
		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case ":quit", ":exit":
			return
		case ":reset":
			buffer = nil
			fmt.Fprintln(c.out, "buffer cleared")
			continue
		}
		rl.AppendHistory(input)

		candidate := append(append([]string(nil), buffer...), input)
		if c.Eval(strings.Join(candidate, "\n")) {
			buffer = candidate
		}
	}
}
