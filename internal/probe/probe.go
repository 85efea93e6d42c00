// Package probe implements one collector per hardware/OS domain. A probe
// composes the executor and the field parsers into a report section; it never
// fails the run, whatever the host looks like.
package probe

import (
	"github.com/charmbracelet/log"

	"github.com/sysprobe/sysprobe/internal/execx"
	"github.com/sysprobe/sysprobe/internal/report"
)

// Context carries the run flags and the access surface a probe may use.
type Context struct {
	Brief   bool
	Verbose bool
	Exec    execx.Runner
	Log     *log.Logger
}

// Debugf traces a probe step when verbose logging is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Debugf(format, args...)
	}
}

// Probe names a domain and the function that collects it.
type Probe struct {
	Name string
	Run  func(*Context) *report.Section
}

// All returns the probes in the fixed report order.
func All() []Probe {
	return []Probe{
		{Name: "system", Run: System},
		{Name: "hardware", Run: Hardware},
		{Name: "cpu", Run: CPU},
		{Name: "memory", Run: Memory},
		{Name: "graphics", Run: Graphics},
		{Name: "audio", Run: Audio},
		{Name: "network", Run: Network},
		{Name: "storage", Run: Storage},
		{Name: "usb", Run: USB},
		{Name: "power", Run: Power},
		{Name: "temperature", Run: Temperature},
	}
}
