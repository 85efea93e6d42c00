package probe

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

const cpufreqDir = "/sys/devices/system/cpu/cpu0/cpufreq"

// CPU gathers processor identity, core counts, frequency and load.
func CPU(ctx *Context) *report.Section {
	sec := report.NewSection()

	if arch, err := host.KernelArch(); err == nil {
		sec.SetString("architecture", arch)
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		sec.SetString("processor", infos[0].ModelName)
	}

	if content, ok := ctx.Exec.ReadFile("/proc/cpuinfo"); ok {
		addCPUInfoFields(sec, content)
	}

	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		sec.Set("physical_cores", report.IntValue(int64(physical)))
	}

	if raw, ok := ctx.Exec.ReadFile(cpufreqDir + "/scaling_cur_freq"); ok {
		if mhz, valid := parse.KHzToMHz(raw); valid {
			sec.Set("current_frequency_mhz", report.IntValue(mhz))
		}
	}
	if raw, ok := ctx.Exec.ReadFile(cpufreqDir + "/scaling_max_freq"); ok {
		if mhz, valid := parse.KHzToMHz(raw); valid {
			sec.Set("max_frequency_mhz", report.IntValue(mhz))
		}
	}
	if governor, ok := ctx.Exec.ReadFile(cpufreqDir + "/scaling_governor"); ok {
		sec.SetString("governor", governor)
	}

	if load, ok := loadAverage(ctx); ok {
		sec.SetString("load_average", load)
	}

	return sec
}

// addCPUInfoFields extracts the first occurrence of each interesting
// /proc/cpuinfo field and counts processor entries for the logical core
// count. Kept independent from the executor for testability.
func addCPUInfoFields(sec *report.Section, cpuinfo string) {
	logical := 0
	for _, line := range strings.Split(cpuinfo, "\n") {
		key, value, ok := parse.SplitKeyValue(line, ":")
		if !ok {
			continue
		}
		switch key {
		case "processor":
			logical++
		case "model name":
			setOnce(sec, "model_name", value)
		case "vendor_id":
			setOnce(sec, "vendor", value)
		case "cpu family":
			setOnce(sec, "family", value)
		case "model":
			setOnce(sec, "model_id", value)
		case "stepping":
			setOnce(sec, "stepping", value)
		case "cache size":
			setOnce(sec, "cache_size", value)
		case "flags":
			if _, exists := sec.Get("features"); !exists {
				flags := strings.Fields(value)
				if len(flags) > 10 {
					flags = flags[:10]
				}
				sec.SetString("features", strings.Join(flags, " ")+"...")
			}
		}
	}
	if logical > 0 {
		sec.Set("logical_cores", report.IntValue(int64(logical)))
	}
}

func setOnce(sec *report.Section, name, value string) {
	if _, exists := sec.Get(name); !exists {
		sec.SetString(name, value)
	}
}

// loadAverage formats the /proc/loadavg triple.
func loadAverage(ctx *Context) (string, bool) {
	content, ok := ctx.Exec.ReadFile("/proc/loadavg")
	if !ok {
		return "", false
	}
	fields := strings.Fields(content)
	if len(fields) < 3 {
		return "", false
	}
	return fmt.Sprintf("%s (1min), %s (5min), %s (15min)", fields[0], fields[1], fields[2]), true
}
