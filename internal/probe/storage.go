package probe

import (
	"encoding/json"
	"strings"

	"github.com/sysprobe/sysprobe/internal/report"
)

// allowed filesystem types for the usage listing
var dfFilesystems = []string{"ext4", "ext3", "ext2", "btrfs", "xfs", "zfs"}

// smartDeviceLimit bounds how many disks the SMART pass touches.
const smartDeviceLimit = 5

type lsblkDevice struct {
	Name       string        `json:"name"`
	Size       string        `json:"size"`
	Type       string        `json:"type"`
	Mountpoint string        `json:"mountpoint"`
	Fstype     string        `json:"fstype"`
	Model      string        `json:"model"`
	Children   []lsblkDevice `json:"children"`
}

type lsblkOutput struct {
	Blockdevices []lsblkDevice `json:"blockdevices"`
}

// Storage gathers block devices, filesystem usage and, under verbose, SMART
// health.
func Storage(ctx *Context) *report.Section {
	sec := report.NewSection()

	if tbl := blockDeviceTable(ctx); tbl != nil && tbl.Len() > 0 {
		sec.Set("block_devices", report.TableValue(tbl))
	}
	if tbl := filesystemTable(ctx); tbl != nil && tbl.Len() > 0 {
		sec.Set("filesystems", report.TableValue(tbl))
	}
	if ctx.Verbose {
		if tbl := diskHealthTable(ctx); tbl != nil && tbl.Len() > 0 {
			sec.Set("disk_health", report.TableValue(tbl))
		}
	}

	return sec
}

// blockDeviceTable parses the lsblk JSON listing, flattening each device and
// its direct children into peer rows.
func blockDeviceTable(ctx *Context) *report.Table {
	if !ctx.Exec.LookPath("lsblk") {
		return nil
	}
	res := ctx.Exec.Run("lsblk", "-J")
	if !res.OK() || res.Stdout == "" {
		return nil
	}

	var out lsblkOutput
	if err := json.Unmarshal([]byte(res.Stdout), &out); err != nil {
		ctx.Debugf("lsblk output not parseable: %v", err)
		return nil
	}

	tbl := report.NewTable("Device", "Size", "Type", "Filesystem", "Mount Point", "Model")
	for _, dev := range out.Blockdevices {
		addBlockDeviceRow(tbl, dev)
		for _, child := range dev.Children {
			addBlockDeviceRow(tbl, child)
		}
	}
	return tbl
}

func addBlockDeviceRow(tbl *report.Table, dev lsblkDevice) {
	tbl.AddStringRow(
		orDefault(dev.Name, "unknown"),
		orDefault(dev.Size, "Unknown"),
		orDefault(dev.Type, "Unknown"),
		orDefault(dev.Fstype, "Unknown"),
		orDefault(dev.Mountpoint, "Not mounted"),
		orDefault(dev.Model, "N/A"),
	)
}

// filesystemTable lists usage for the allow-listed filesystem types.
func filesystemTable(ctx *Context) *report.Table {
	if !ctx.Exec.LookPath("df") {
		return nil
	}
	args := []string{"-h"}
	for _, fs := range dfFilesystems {
		args = append(args, "-t", fs)
	}
	res := ctx.Exec.Run("df", args...)
	if !res.OK() || res.Stdout == "" {
		return nil
	}

	lines := strings.Split(res.Stdout, "\n")
	if len(lines) < 2 {
		return nil
	}
	tbl := report.NewTable("Filesystem", "Size", "Used", "Available", "Use%", "Mount Point")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		tbl.AddStringRow(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5])
	}
	return tbl
}

// diskHealthTable queries SMART overall health for the first few discovered
// disks. Privileged and slow, so verbose-only.
func diskHealthTable(ctx *Context) *report.Table {
	if !ctx.Exec.LookPath("smartctl") {
		return nil
	}

	var devices []string
	devices = append(devices, ctx.Exec.Glob("/dev/sd?")...)
	devices = append(devices, ctx.Exec.Glob("/dev/nvme?n1")...)
	if len(devices) > smartDeviceLimit {
		devices = devices[:smartDeviceLimit]
	}

	tbl := report.NewTable("Device", "Health Status")
	for _, dev := range devices {
		res := ctx.Exec.RunPrivileged("smartctl", "-H", dev)
		if !res.OK() {
			continue
		}
		for _, line := range strings.Split(res.Stdout, "\n") {
			if strings.Contains(line, "SMART overall-health") {
				if _, health, ok := cutAfterColon(line); ok {
					tbl.AddStringRow(dev, health)
				}
				break
			}
		}
	}
	return tbl
}

func cutAfterColon(line string) (string, string, bool) {
	k, v, ok := strings.Cut(line, ":")
	return strings.TrimSpace(k), strings.TrimSpace(v), ok
}
