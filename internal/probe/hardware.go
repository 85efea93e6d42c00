package probe

import (
	"github.com/sysprobe/sysprobe/internal/report"
)

// dmiFields maps stable field names to their sysfs DMI sources, in display
// order.
var dmiFields = []struct {
	name string
	path string
}{
	{"manufacturer", "/sys/class/dmi/id/sys_vendor"},
	{"product_name", "/sys/class/dmi/id/product_name"},
	{"product_version", "/sys/class/dmi/id/product_version"},
	{"serial_number", "/sys/class/dmi/id/product_serial"},
	{"bios_vendor", "/sys/class/dmi/id/bios_vendor"},
	{"bios_version", "/sys/class/dmi/id/bios_version"},
	{"bios_date", "/sys/class/dmi/id/bios_date"},
	{"board_name", "/sys/class/dmi/id/board_name"},
	{"board_vendor", "/sys/class/dmi/id/board_vendor"},
}

// SMBIOS chassis type codes.
var chassisTypes = map[string]string{
	"1": "Other", "2": "Unknown", "3": "Desktop", "4": "Low Profile Desktop",
	"5": "Pizza Box", "6": "Mini Tower", "7": "Tower", "8": "Portable",
	"9": "Laptop", "10": "Notebook", "11": "Hand Held", "12": "Docking Station",
	"13": "All In One", "14": "Sub Notebook", "15": "Space-saving",
	"16": "Lunch Box", "17": "Main Server Chassis", "18": "Expansion Chassis",
	"19": "Sub Chassis", "20": "Bus Expansion Chassis", "21": "Peripheral Chassis",
	"22": "RAID Chassis", "23": "Rack Mount Chassis", "24": "Sealed-case PC",
}

// Vendor placeholder strings that mean "no value".
var dmiPlaceholders = map[string]bool{
	"To be filled by O.E.M.": true,
	"Not Specified":          true,
	"":                       true,
}

// Hardware gathers DMI/SMBIOS identity and the chassis type.
func Hardware(ctx *Context) *report.Section {
	sec := report.NewSection()

	for _, f := range dmiFields {
		value, ok := ctx.Exec.ReadFile(f.path)
		if !ok || dmiPlaceholders[value] {
			value = "Unknown"
		}
		sec.SetString(f.name, value)
	}

	chassis := "Unknown"
	if code, ok := ctx.Exec.ReadFile("/sys/class/dmi/id/chassis_type"); ok {
		if name, known := chassisTypes[code]; known {
			chassis = name
		}
	}
	sec.SetString("chassis_type", chassis)

	return sec
}
