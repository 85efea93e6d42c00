// Package run sequences the probes, aggregates their sections and renders
// the result exactly once.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sysprobe/sysprobe/internal/execx"
	"github.com/sysprobe/sysprobe/internal/probe"
	"github.com/sysprobe/sysprobe/internal/render"
	"github.com/sysprobe/sysprobe/internal/report"
)

// Format selects the output projection.
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
	FormatYAML
)

// ErrInterrupted reports that the user cancelled the run between probes.
var ErrInterrupted = errors.New("interrupted by user")

// Options configures one probe pass.
type Options struct {
	Brief   bool
	Verbose bool
	Format  Format
	Color   bool
	Timeout time.Duration
	Runner  execx.Runner
	Log     *log.Logger
	Out     io.Writer
}

// Execute runs every probe in the fixed order and writes the rendered report
// to opts.Out in a single write, so an interrupt never leaves partial output.
func Execute(ctx context.Context, opts Options) error {
	runner := opts.Runner
	if runner == nil {
		runner = execx.NewSystem(opts.Timeout)
	}
	pctx := &probe.Context{
		Brief:   opts.Brief,
		Verbose: opts.Verbose,
		Exec:    runner,
		Log:     opts.Log,
	}

	rep := report.New()
	for _, p := range probe.All() {
		select {
		case <-ctx.Done():
			return ErrInterrupted
		default:
		}
		pctx.Debugf("probing %s", p.Name)
		if err := rep.Add(p.Name, p.Run(pctx)); err != nil {
			return fmt.Errorf("failed to aggregate %s: %w", p.Name, err)
		}
	}

	select {
	case <-ctx.Done():
		return ErrInterrupted
	default:
	}

	var buf bytes.Buffer
	var err error
	switch opts.Format {
	case FormatJSON:
		err = render.JSON(&buf, rep)
	case FormatYAML:
		err = render.YAML(&buf, rep)
	default:
		err = render.NewConsole(opts.Color).Render(&buf, rep)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	_, err = opts.Out.Write(buf.Bytes())
	return err
}
