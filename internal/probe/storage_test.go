package probe

import (
	"testing"

	"github.com/sysprobe/sysprobe/internal/report"
)

const sampleLsblk = `{
  "blockdevices": [
    {
      "name": "sda", "size": "465.8G", "type": "disk", "mountpoint": null,
      "fstype": null, "model": "Samsung SSD 870",
      "children": [
        {"name": "sda1", "size": "512M", "type": "part", "mountpoint": "/boot", "fstype": "vfat"},
        {"name": "sda2", "size": "465.3G", "type": "part", "mountpoint": "/", "fstype": "ext4"}
      ]
    },
    {"name": "zram0", "size": "4G", "type": "disk", "mountpoint": "[SWAP]", "fstype": "swap"}
  ]
}`

const sampleDF = `Filesystem      Size  Used Avail Use% Mounted on
/dev/sda2       458G  102G  333G  24% /
/dev/sda1       511M  52M  459M  11% /boot`

func storageFake() *fakeRunner {
	fr := newFakeRunner()
	fr.tools["lsblk"] = true
	fr.tools["df"] = true
	fr.commands["lsblk -J"] = okResult(sampleLsblk)
	fr.commands["df -h -t ext4 -t ext3 -t ext2 -t btrfs -t xfs -t zfs"] = okResult(sampleDF)
	return fr
}

func TestStorageFlattensBlockDevices(t *testing.T) {
	sec := Storage(testContext(storageFake()))

	v, ok := sec.Get("block_devices")
	if !ok || v.Kind() != report.KindTable {
		t.Fatalf("block_devices table missing")
	}
	tbl := v.Table()
	if tbl.Len() != 4 {
		t.Fatalf("table has %d rows, want 4 (disk + 2 partitions + zram)", tbl.Len())
	}
	if tbl.Rows[0][0].String() != "sda" || tbl.Rows[1][0].String() != "sda1" || tbl.Rows[2][0].String() != "sda2" {
		t.Errorf("children must follow their parent: %v %v %v",
			tbl.Rows[0][0].String(), tbl.Rows[1][0].String(), tbl.Rows[2][0].String())
	}
	if tbl.Rows[0][4].String() != "Not mounted" {
		t.Errorf("null mountpoint = %q, want Not mounted", tbl.Rows[0][4].String())
	}
	if tbl.Rows[0][5].String() != "Samsung SSD 870" {
		t.Errorf("model = %q", tbl.Rows[0][5].String())
	}
	if tbl.Rows[1][5].String() != "N/A" {
		t.Errorf("partition model = %q, want N/A", tbl.Rows[1][5].String())
	}
}

func TestStorageFilesystemUsage(t *testing.T) {
	sec := Storage(testContext(storageFake()))

	v, ok := sec.Get("filesystems")
	if !ok || v.Kind() != report.KindTable {
		t.Fatalf("filesystems table missing")
	}
	tbl := v.Table()
	if tbl.Len() != 2 {
		t.Fatalf("table has %d rows, want 2 (header skipped)", tbl.Len())
	}
	if tbl.Rows[0][0].String() != "/dev/sda2" || tbl.Rows[0][4].String() != "24%" {
		t.Errorf("row 0 = %v %v", tbl.Rows[0][0].String(), tbl.Rows[0][4].String())
	}
}

func TestStorageSmartOnlyUnderVerbose(t *testing.T) {
	fr := storageFake()
	fr.tools["smartctl"] = true
	fr.globs["/dev/sd?"] = []string{"/dev/sda"}
	fr.privileged["smartctl -H /dev/sda"] = okResult("SMART overall-health self-assessment test result: PASSED")

	sec := Storage(testContext(fr))
	if _, ok := sec.Get("disk_health"); ok {
		t.Error("SMART must not run without verbose")
	}

	ctx := testContext(fr)
	ctx.Verbose = true
	sec = Storage(ctx)
	v, ok := sec.Get("disk_health")
	if !ok || v.Kind() != report.KindTable {
		t.Fatal("disk_health table missing under verbose")
	}
	row := v.Table().Rows[0]
	if row[0].String() != "/dev/sda" || row[1].String() != "PASSED" {
		t.Errorf("health row = %v %v", row[0].String(), row[1].String())
	}
}

func TestStorageSmartDeviceCap(t *testing.T) {
	fr := storageFake()
	fr.tools["smartctl"] = true
	fr.globs["/dev/sd?"] = []string{"/dev/sda", "/dev/sdb", "/dev/sdc", "/dev/sdd", "/dev/sde", "/dev/sdf", "/dev/sdg"}
	for _, dev := range fr.globs["/dev/sd?"] {
		fr.privileged["smartctl -H "+dev] = okResult("SMART overall-health self-assessment test result: PASSED")
	}

	ctx := testContext(fr)
	ctx.Verbose = true
	sec := Storage(ctx)

	v, ok := sec.Get("disk_health")
	if !ok {
		t.Fatal("disk_health table missing")
	}
	if v.Table().Len() != 5 {
		t.Errorf("SMART touched %d devices, want the first 5 only", v.Table().Len())
	}
}

func TestStorageMalformedLsblk(t *testing.T) {
	fr := storageFake()
	fr.commands["lsblk -J"] = okResult("not json at all")

	sec := Storage(testContext(fr))
	if _, ok := sec.Get("block_devices"); ok {
		t.Error("malformed lsblk output must contribute nothing")
	}
	if _, ok := sec.Get("filesystems"); !ok {
		t.Error("filesystem usage must survive a broken lsblk")
	}
}
