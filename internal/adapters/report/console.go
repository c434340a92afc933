// Package report renders pipeline progress to the terminal. Reduction runs
// for minutes at a time, so the renderer is a plain line printer: one line
// per stage transition, styled when stdout is an interactive terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"go.skade.ch/crashmin/internal/core/ports"
	"go.skade.ch/crashmin/internal/ui/output"
	"go.skade.ch/crashmin/internal/ui/style"
)

var (
	runningStyle = lipgloss.NewStyle().Foreground(style.Iris).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(style.Green)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red)
	faintStyle   = lipgloss.NewStyle().Foreground(style.Slate)
	resultStyle  = lipgloss.NewStyle().Bold(true)
)

// Console implements ports.Reporter on a plain writer.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	styled  bool
	started map[string]time.Time
}

// NewConsole creates a reporter on w. Styling is enabled only when w is an
// interactive terminal whose color profile permits it.
func NewConsole(w io.Writer) *Console {
	styled := false
	if f, ok := w.(*os.File); ok {
		out := output.New(f)
		styled = out.Profile != termenv.Ascii && term.IsTerminal(int(f.Fd()))
		w = out
	}
	return &Console{w: w, styled: styled, started: make(map[string]time.Time)}
}

// StageStart prints the stage banner and starts its clock.
func (c *Console) StageStart(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started[name] = time.Now()
	fmt.Fprintf(c.w, "%s %s\n", c.render(runningStyle, style.Dot), name)
}

// StageDone prints the stage outcome with its elapsed time.
func (c *Console) StageDone(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := ""
	if start, ok := c.started[name]; ok {
		delete(c.started, name)
		if d := time.Since(start); d >= time.Second {
			elapsed = " " + c.render(faintStyle, "("+d.Round(time.Second).String()+")")
		}
	}

	if err != nil {
		fmt.Fprintf(c.w, "%s %s%s: %v\n", c.render(errorStyle, style.Cross), name, elapsed, err)
		return
	}
	fmt.Fprintf(c.w, "%s %s%s\n", c.render(doneStyle, style.Check), name, elapsed)
}

// Result prints the final artifact line with the size reduction.
func (c *Console) Result(output string, linesBefore, linesAfter int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s %s\n",
		c.render(doneStyle, style.Check),
		c.render(resultStyle, output),
		c.render(faintStyle, fmt.Sprintf("(%d %s %d lines)", linesBefore, style.Arrow, linesAfter)),
	)
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}

var _ ports.Reporter = (*Console)(nil)
