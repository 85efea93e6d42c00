package probe

import (
	"regexp"
	"strings"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

var (
	ifaceLine = regexp.MustCompile(`^\d+:\s+(\w+):`)
	macAddr   = regexp.MustCompile(`link/ether\s+([a-f0-9:]{17})`)
	inet4Addr = regexp.MustCompile(`inet\s+([0-9.]+/\d+)`)
	inet6Addr = regexp.MustCompile(`inet6\s+([a-f0-9:]+/\d+)`)
)

type netInterface struct {
	name  string
	state string
	mac   string
	ipv4  []string
	ipv6  []string
}

var connectivityHosts = []string{"8.8.8.8", "google.com"}

// Network gathers interface state and addressing plus network hardware;
// outside brief mode it also runs a connectivity test.
func Network(ctx *Context) *report.Section {
	sec := report.NewSection()

	setDeviceFields(sec, "network_hardware", "network_device",
		scanPCI(ctx, pciClassNetwork, "network", "ethernet", "wireless", "wifi"))

	if !ctx.Brief {
		sec.SetString("internet_connectivity", testConnectivity(ctx))
	}

	interfaces := discoverInterfaces(ctx)
	if len(interfaces) > 0 {
		tbl := report.NewTable("Interface", "State", "MAC Address", "IPv4", "IPv6")
		for _, iface := range interfaces {
			tbl.AddStringRow(
				iface.name,
				orDefault(iface.state, "Unknown"),
				orDefault(iface.mac, "N/A"),
				orDefault(strings.Join(iface.ipv4, ", "), "N/A"),
				orDefault(strings.Join(iface.ipv6, ", "), "N/A"),
			)
		}
		sec.Set("interfaces", report.TableValue(tbl))
	}

	return sec
}

// discoverInterfaces is two-pass: enumerate names, state and MAC from the
// link listing, then query each interface for its addresses.
func discoverInterfaces(ctx *Context) []*netInterface {
	if !ctx.Exec.LookPath("ip") {
		return nil
	}
	res := ctx.Exec.Run("ip", "link", "show")
	if !res.OK() {
		return nil
	}

	var interfaces []*netInterface
	var current *netInterface
	for _, line := range strings.Split(res.Stdout, "\n") {
		if name, ok := parse.FirstSubmatch(ifaceLine, line); ok {
			current = &netInterface{name: name, state: linkState(line)}
			interfaces = append(interfaces, current)
			continue
		}
		if current == nil {
			continue
		}
		if mac, ok := parse.FirstSubmatch(macAddr, line); ok {
			current.mac = mac
		}
	}

	for _, iface := range interfaces {
		addr := ctx.Exec.Run("ip", "addr", "show", iface.name)
		if !addr.OK() {
			continue
		}
		for _, line := range strings.Split(addr.Stdout, "\n") {
			if v4, ok := parse.FirstSubmatch(inet4Addr, line); ok {
				iface.ipv4 = append(iface.ipv4, v4)
			}
			if v6, ok := parse.FirstSubmatch(inet6Addr, line); ok && !strings.HasPrefix(v6, "::1") {
				iface.ipv6 = append(iface.ipv6, v6)
			}
		}
	}

	return interfaces
}

func linkState(line string) string {
	switch {
	case strings.Contains(line, "state UP"):
		return "UP"
	case strings.Contains(line, "state DOWN"):
		return "DOWN"
	}
	return "UNKNOWN"
}

// testConnectivity pings the candidate hosts, first success wins.
func testConnectivity(ctx *Context) string {
	for _, h := range connectivityHosts {
		if ctx.Exec.Run("ping", "-c", "1", "-W", "2", h).OK() {
			return "Connected"
		}
	}
	return "No connectivity"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
