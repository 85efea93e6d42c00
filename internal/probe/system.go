package probe

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/sysprobe/sysprobe/internal/report"
)

// System gathers host identity: names, platform, distribution, boot facts.
func System(ctx *Context) *report.Section {
	sec := report.NewSection()

	if hostname, err := os.Hostname(); err == nil {
		sec.SetString("hostname", hostname)
	}
	username := os.Getenv("USER")
	if username == "" {
		username = "unknown"
	}
	sec.SetString("username", username)

	if info, err := host.Info(); err == nil {
		sec.SetString("architecture", info.KernelArch)
		sec.SetString("platform", strings.TrimSpace(info.Platform+" "+info.PlatformVersion))
		sec.SetString("system", titleWord(info.OS))
		sec.SetString("release", info.KernelVersion)
		if info.VirtualizationSystem != "" {
			sec.SetString("virtualization", info.VirtualizationSystem)
		}
	}

	now := time.Now()
	if boot, ok := bootTime(ctx, now); ok {
		sec.SetString("boot_time", boot.Format("2006-01-02 15:04:05"))
		sec.SetString("uptime", humanize.RelTime(boot, now, "", ""))
	} else {
		sec.SetString("boot_time", "Unknown")
	}
	sec.SetString("current_time", now.Format("2006-01-02 15:04:05 MST"))
	zone, _ := now.Zone()
	if zone == "" {
		zone = "Unknown"
	}
	sec.SetString("timezone", zone)

	addDistroFields(ctx, sec)
	sec.SetString("boot_mode", bootMode(ctx))

	return sec
}

// bootTime derives the boot instant from /proc/uptime.
func bootTime(ctx *Context, now time.Time) (time.Time, bool) {
	content, ok := ctx.Exec.ReadFile("/proc/uptime")
	if !ok {
		return time.Time{}, false
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(seconds * float64(time.Second))), true
}

// addDistroFields reads /etc/os-release. A host without it still reports a
// generic distribution label.
func addDistroFields(ctx *Context, sec *report.Section) {
	content, ok := ctx.Exec.ReadFile("/etc/os-release")
	if !ok {
		sec.SetString("distribution", "Unknown Linux")
		return
	}
	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "PRETTY_NAME":
			sec.SetString("distribution", value)
		case "VERSION_ID":
			sec.SetString("version_id", value)
		case "ID":
			sec.SetString("distro_id", value)
		}
	}
}

func bootMode(ctx *Context) string {
	if len(ctx.Exec.Glob("/sys/firmware/efi")) > 0 {
		return "UEFI"
	}
	return "BIOS"
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
