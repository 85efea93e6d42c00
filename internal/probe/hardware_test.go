package probe

import "testing"

func TestHardwareDMIFields(t *testing.T) {
	fr := newFakeRunner()
	fr.files["/sys/class/dmi/id/sys_vendor"] = "ASUSTeK COMPUTER INC."
	fr.files["/sys/class/dmi/id/product_name"] = "ROG STRIX B550-F"
	fr.files["/sys/class/dmi/id/product_version"] = "To be filled by O.E.M."
	fr.files["/sys/class/dmi/id/bios_vendor"] = "American Megatrends Inc."
	fr.files["/sys/class/dmi/id/chassis_type"] = "3"

	sec := Hardware(testContext(fr))

	if v, _ := sec.Get("manufacturer"); v.String() != "ASUSTeK COMPUTER INC." {
		t.Errorf("manufacturer = %q", v.String())
	}
	if v, _ := sec.Get("product_version"); v.String() != "Unknown" {
		t.Errorf("product_version = %q, OEM placeholder must map to Unknown", v.String())
	}
	if v, _ := sec.Get("serial_number"); v.String() != "Unknown" {
		t.Errorf("serial_number = %q, unreadable file must map to Unknown", v.String())
	}
	if v, _ := sec.Get("chassis_type"); v.String() != "Desktop" {
		t.Errorf("chassis_type = %q, want Desktop for code 3", v.String())
	}
}

func TestHardwareUnknownChassisCode(t *testing.T) {
	fr := newFakeRunner()
	fr.files["/sys/class/dmi/id/chassis_type"] = "99"

	sec := Hardware(testContext(fr))
	if v, _ := sec.Get("chassis_type"); v.String() != "Unknown" {
		t.Errorf("chassis_type = %q, want Unknown for unmapped code", v.String())
	}
}

func TestHardwareAlwaysFullFieldSet(t *testing.T) {
	sec := Hardware(testContext(newFakeRunner()))
	// 9 DMI fields plus chassis_type, all defaulting to Unknown.
	if sec.Len() != 10 {
		t.Errorf("section has %d fields, want 10", sec.Len())
	}
}
