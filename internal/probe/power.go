package probe

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sysprobe/sysprobe/internal/report"
)

const powerSupplyPath = "/sys/class/power_supply"

// Power gathers battery and AC adapter state from sysfs. A host with no
// battery reports that explicitly rather than an empty section.
func Power(ctx *Context) *report.Section {
	sec := report.NewSection()

	count := 0
	for _, batteryPath := range ctx.Exec.Glob(filepath.Join(powerSupplyPath, "BAT*")) {
		count++
		name := strings.ToLower(filepath.Base(batteryPath))
		prefix := name + "_"
		if count > 1 {
			prefix = name + "_" + strconv.Itoa(count) + "_"
		}

		if v, ok := ctx.Exec.ReadFile(filepath.Join(batteryPath, "capacity")); ok {
			sec.SetString(prefix+"capacity_percent", v)
		}
		if v, ok := ctx.Exec.ReadFile(filepath.Join(batteryPath, "status")); ok {
			sec.SetString(prefix+"status", v)
		}
		if v, ok := ctx.Exec.ReadFile(filepath.Join(batteryPath, "technology")); ok {
			sec.SetString(prefix+"technology", v)
		}
		if v, ok := ctx.Exec.ReadFile(filepath.Join(batteryPath, "manufacturer")); ok {
			sec.SetString(prefix+"manufacturer", v)
		}
	}

	if count == 0 {
		sec.SetString("battery_status", "No battery detected (Desktop system)")
	}

	for _, adapterPath := range ctx.Exec.Glob(filepath.Join(powerSupplyPath, "A[CD]*")) {
		online, ok := ctx.Exec.ReadFile(filepath.Join(adapterPath, "online"))
		if !ok {
			continue
		}
		status := "Disconnected"
		if online == "1" {
			status = "Connected"
		}
		sec.SetString(strings.ToLower(filepath.Base(adapterPath))+"_status", status)
	}

	return sec
}
