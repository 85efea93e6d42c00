package probe

import (
	"math"
	"strings"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

// Memory gathers RAM and swap usage from /proc/meminfo plus best-effort
// memory hardware facts from dmidecode.
func Memory(ctx *Context) *report.Section {
	sec := report.NewSection()

	if content, ok := ctx.Exec.ReadFile("/proc/meminfo"); ok {
		addMeminfoFields(sec, content)
	}
	addMemoryHardwareFields(ctx, sec)

	return sec
}

// addMeminfoFields converts the kB counters to GB fields. Usage percent is
// (total - available) / total, one decimal place.
func addMeminfoFields(sec *report.Section, meminfo string) {
	mem := parse.NumericKeyValues(meminfo)

	total, hasTotal := mem["MemTotal"]
	if hasTotal {
		sec.Set("total_ram_gb", report.FloatValue(parse.KBIntToGB(total)))
	}
	available, hasAvailable := mem["MemAvailable"]
	if hasAvailable {
		sec.Set("available_ram_gb", report.FloatValue(parse.KBIntToGB(available)))
	}
	if hasTotal && hasAvailable && total > 0 {
		used := total - available
		sec.Set("used_ram_gb", report.FloatValue(parse.KBIntToGB(used)))
		percent := float64(used) / float64(total) * 100
		sec.Set("usage_percent", report.FloatValue(math.Round(percent*10)/10))
	}

	swapTotal, hasSwapTotal := mem["SwapTotal"]
	if hasSwapTotal {
		sec.Set("total_swap_gb", report.FloatValue(parse.KBIntToGB(swapTotal)))
	}
	if swapFree, ok := mem["SwapFree"]; ok && hasSwapTotal {
		sec.Set("used_swap_gb", report.FloatValue(parse.KBIntToGB(swapTotal-swapFree)))
	}
}

// addMemoryHardwareFields decodes DIMM facts through privileged dmidecode.
// Hosts without the tool or without passwordless elevation contribute nothing.
func addMemoryHardwareFields(ctx *Context, sec *report.Section) {
	if !ctx.Exec.LookPath("dmidecode") {
		return
	}
	res := ctx.Exec.RunPrivileged("dmidecode", "-t", "memory")
	if !res.OK() || res.Stdout == "" {
		ctx.Debugf("dmidecode unavailable: %s", res.Outcome)
		return
	}

	slots := 0
	var memType, speed string
	for _, line := range strings.Split(res.Stdout, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, "Memory Device"):
			slots++
		case strings.HasPrefix(trimmed, "Type:") && !strings.Contains(trimmed, "Error"):
			if memType == "" {
				_, memType, _ = parse.SplitKeyValue(trimmed, ":")
			}
		case strings.HasPrefix(trimmed, "Speed:") && !strings.Contains(trimmed, "Unknown"):
			if speed == "" {
				_, speed, _ = parse.SplitKeyValue(trimmed, ":")
			}
		}
	}

	if slots > 0 {
		sec.Set("memory_slots", report.IntValue(int64(slots)))
	}
	sec.SetString("memory_type", memType)
	sec.SetString("memory_speed", speed)
}
