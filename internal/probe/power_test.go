package probe

import "testing"

func TestPowerNoBattery(t *testing.T) {
	sec := Power(testContext(newFakeRunner()))

	if sec.Len() != 1 {
		t.Fatalf("section has %d fields, want exactly 1", sec.Len())
	}
	v, ok := sec.Get("battery_status")
	if !ok || v.String() != "No battery detected (Desktop system)" {
		t.Errorf("battery_status = %v ok=%v", v, ok)
	}
}

func TestPowerSingleBattery(t *testing.T) {
	fr := newFakeRunner()
	fr.globs["/sys/class/power_supply/BAT*"] = []string{"/sys/class/power_supply/BAT0"}
	fr.files["/sys/class/power_supply/BAT0/capacity"] = "87"
	fr.files["/sys/class/power_supply/BAT0/status"] = "Discharging"
	fr.files["/sys/class/power_supply/BAT0/technology"] = "Li-ion"

	sec := Power(testContext(fr))

	if v, ok := sec.Get("bat0_capacity_percent"); !ok || v.String() != "87" {
		t.Errorf("bat0_capacity_percent = %v ok=%v", v, ok)
	}
	if v, ok := sec.Get("bat0_status"); !ok || v.String() != "Discharging" {
		t.Errorf("bat0_status = %v ok=%v", v, ok)
	}
	if _, ok := sec.Get("battery_status"); ok {
		t.Error("no-battery fallback must not appear when a battery exists")
	}
}

func TestPowerSecondBatteryGetsNumericSuffix(t *testing.T) {
	fr := newFakeRunner()
	fr.globs["/sys/class/power_supply/BAT*"] = []string{
		"/sys/class/power_supply/BAT0",
		"/sys/class/power_supply/BAT1",
	}
	fr.files["/sys/class/power_supply/BAT0/capacity"] = "80"
	fr.files["/sys/class/power_supply/BAT1/capacity"] = "60"

	sec := Power(testContext(fr))

	if _, ok := sec.Get("bat0_capacity_percent"); !ok {
		t.Error("first battery should use the plain prefix")
	}
	if _, ok := sec.Get("bat1_2_capacity_percent"); !ok {
		t.Error("second battery should carry the numeric suffix")
	}
}

func TestPowerACAdapter(t *testing.T) {
	fr := newFakeRunner()
	fr.globs["/sys/class/power_supply/A[CD]*"] = []string{"/sys/class/power_supply/AC"}
	fr.files["/sys/class/power_supply/AC/online"] = "1"

	sec := Power(testContext(fr))

	if v, ok := sec.Get("ac_status"); !ok || v.String() != "Connected" {
		t.Errorf("ac_status = %v ok=%v, want Connected", v, ok)
	}
}
