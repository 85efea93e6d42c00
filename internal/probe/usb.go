package probe

import (
	"strings"

	"github.com/sysprobe/sysprobe/internal/report"
)

// USB lists connected USB devices from lsusb, excluding root hubs.
func USB(ctx *Context) *report.Section {
	sec := report.NewSection()

	if !ctx.Exec.LookPath("lsusb") {
		return sec
	}
	res := ctx.Exec.Run("lsusb")
	if !res.OK() || res.Stdout == "" {
		return sec
	}

	tbl := report.NewTable("Bus", "Device", "ID", "Description")
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == "" || strings.Contains(strings.ToLower(line), "root hub") {
			continue
		}
		// Bus 001 Device 002: ID 1234:5678 Device Name
		parts := strings.SplitN(line, " ", 7)
		if len(parts) < 7 {
			continue
		}
		tbl.AddStringRow(parts[1], strings.TrimSuffix(parts[3], ":"), parts[5], parts[6])
	}

	if tbl.Len() == 0 {
		sec.SetString("devices", "None detected")
		return sec
	}
	sec.Set("device_count", report.IntValue(int64(tbl.Len())))
	sec.Set("devices", report.TableValue(tbl))

	return sec
}
