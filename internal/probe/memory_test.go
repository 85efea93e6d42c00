package probe

import (
	"testing"

	"github.com/sysprobe/sysprobe/internal/report"
)

func TestMemoryFromMeminfo(t *testing.T) {
	fr := newFakeRunner()
	fr.files["/proc/meminfo"] = "MemTotal:       16000000 kB\nMemAvailable:    8000000 kB\n"

	sec := Memory(testContext(fr))

	expectFloat(t, sec, "total_ram_gb", 15.26)
	expectFloat(t, sec, "available_ram_gb", 7.63)
	expectFloat(t, sec, "used_ram_gb", 7.63)
	expectFloat(t, sec, "usage_percent", 50.0)
}

func TestMemorySwapUsage(t *testing.T) {
	fr := newFakeRunner()
	fr.files["/proc/meminfo"] = "MemTotal: 16000000 kB\nMemAvailable: 8000000 kB\nSwapTotal: 2097152 kB\nSwapFree: 1048576 kB\n"

	sec := Memory(testContext(fr))

	expectFloat(t, sec, "total_swap_gb", 2.0)
	expectFloat(t, sec, "used_swap_gb", 1.0)
}

func TestMemoryMissingMeminfo(t *testing.T) {
	sec := Memory(testContext(newFakeRunner()))
	if sec == nil {
		t.Fatal("probe must return a section even with no sources")
	}
	if sec.Len() != 0 {
		t.Errorf("section has %d fields, want 0", sec.Len())
	}
}

func TestMemoryHardwareFromDmidecode(t *testing.T) {
	fr := newFakeRunner()
	fr.files["/proc/meminfo"] = "MemTotal: 16000000 kB\n"
	fr.tools["dmidecode"] = true
	fr.privileged["dmidecode -t memory"] = okResult(`Memory Device
	Type: DDR4
	Speed: 3200 MT/s
Memory Device
	Type: DDR4
	Speed: Unknown
`)

	sec := Memory(testContext(fr))

	if v, ok := sec.Get("memory_slots"); !ok || v.Int() != 2 {
		t.Errorf("memory_slots = %v ok=%v, want 2", v, ok)
	}
	if v, ok := sec.Get("memory_type"); !ok || v.String() != "DDR4" {
		t.Errorf("memory_type = %v ok=%v, want DDR4", v, ok)
	}
	if v, ok := sec.Get("memory_speed"); !ok || v.String() != "3200 MT/s" {
		t.Errorf("memory_speed = %v ok=%v, want 3200 MT/s", v, ok)
	}
}

func expectFloat(t *testing.T, sec *report.Section, name string, want float64) {
	t.Helper()
	v, ok := sec.Get(name)
	if !ok {
		t.Fatalf("field %q absent", name)
	}
	if v.Kind() != report.KindFloat {
		t.Fatalf("field %q has kind %v, want float", name, v.Kind())
	}
	if v.Float() != want {
		t.Errorf("field %q = %v, want %v", name, v.Float(), want)
	}
}
