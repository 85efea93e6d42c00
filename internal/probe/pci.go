package probe

import (
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"

	"github.com/sysprobe/sysprobe/internal/report"
)

// PCI device class IDs (pcidb).
const (
	pciClassNetwork    = "02"
	pciClassDisplay    = "03"
	pciClassMultimedia = "04"
)

// pciDescription strips the slot and class columns from an lspci line,
// keeping the device description.
func pciDescription(line string) string {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 3 {
		return ""
	}
	return strings.TrimSpace(parts[2])
}

// scanPCI returns device descriptions whose lspci line matches one of the
// class keywords. When lspci is unavailable it falls back to a ghw PCI walk
// filtered by class ID.
func scanPCI(ctx *Context, classID string, keywords ...string) []string {
	if ctx.Exec.LookPath("lspci") {
		res := ctx.Exec.Run("lspci")
		if !res.OK() {
			return nil
		}
		var devices []string
		for _, line := range strings.Split(res.Stdout, "\n") {
			lower := strings.ToLower(line)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					if desc := pciDescription(line); desc != "" {
						devices = append(devices, desc)
					}
					break
				}
			}
		}
		return devices
	}
	return ghwPCIDescriptions(ctx, classID)
}

// ghwPCIDescriptions walks the PCI bus through ghw, best-effort.
func ghwPCIDescriptions(ctx *Context, classID string) []string {
	info, err := ghw.PCI()
	if err != nil {
		ctx.Debugf("ghw pci walk failed: %v", err)
		return nil
	}
	var devices []string
	for _, dev := range info.Devices {
		if dev.Class == nil || dev.Class.ID != classID {
			continue
		}
		var parts []string
		if dev.Vendor != nil && dev.Vendor.Name != "" {
			parts = append(parts, dev.Vendor.Name)
		}
		if dev.Product != nil && dev.Product.Name != "" {
			parts = append(parts, dev.Product.Name)
		}
		if len(parts) > 0 {
			devices = append(devices, strings.Join(parts, " "))
		}
	}
	return devices
}

// setDeviceFields stores one device under the singular name or many under
// numbered names starting at 1.
func setDeviceFields(sec *report.Section, singular, numbered string, devices []string) {
	if len(devices) == 1 {
		sec.SetString(singular, devices[0])
		return
	}
	for i, dev := range devices {
		sec.SetString(numbered+"_"+strconv.Itoa(i+1), dev)
	}
}
