package probe

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

var sensorReading = regexp.MustCompile(`([+-]?\d+\.\d+)°[CF]`)

// Temperature merges the sensors command output with sysfs thermal zones
// into one readings table.
func Temperature(ctx *Context) *report.Section {
	sec := report.NewSection()
	tbl := report.NewTable("Source", "Sensor", "Temperature")

	if sensorRows(ctx, tbl) {
		sec.Set("sensors_available", report.BoolValue(true))
	}

	zones := 0
	for _, zonePath := range ctx.Exec.Glob("/sys/class/thermal/thermal_zone*") {
		raw, ok := ctx.Exec.ReadFile(filepath.Join(zonePath, "temp"))
		if !ok || !isDigits(raw) {
			continue
		}
		milli, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		zones++
		tbl.AddStringRow("Thermal Zone", filepath.Base(zonePath), strconv.Itoa(milli/1000)+"°C")
	}
	if zones > 0 {
		sec.Set("thermal_zones_count", report.IntValue(int64(zones)))
	}

	if tbl.Len() == 0 {
		sec.SetString("temperature_sensors", "No sensors available")
		return sec
	}
	sec.Set("readings", report.TableValue(tbl))

	return sec
}

// sensorRows parses the sensors command output. Lines without a colon and
// without leading whitespace name the current device; degree-suffixed lines
// are readings.
func sensorRows(ctx *Context, tbl *report.Table) bool {
	if !ctx.Exec.LookPath("sensors") {
		return false
	}
	res := ctx.Exec.Run("sensors")
	if !res.OK() || res.Stdout == "" {
		return false
	}

	found := false
	device := "Unknown"
	for _, line := range strings.Split(res.Stdout, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(line, ":") && trimmed != "" && !strings.HasPrefix(line, " ") {
			device = trimmed
			continue
		}
		if !strings.Contains(line, "°C") && !strings.Contains(line, "°F") {
			continue
		}
		reading := sensorReading.FindString(line)
		if reading == "" {
			continue
		}
		name := "Temperature"
		if key, _, ok := parse.SplitKeyValue(line, ":"); ok {
			name = key
		}
		tbl.AddStringRow(device, name, reading)
		found = true
	}
	return found
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
