package collector

import (
	"errors"
	"testing"
)

func TestParseLsblk(t *testing.T) {
	// util-linux >= 2.37: native JSON types
	native := `{"blockdevices": [
		{"name": "nvme0n1", "model": "Samsung SSD 980 PRO 1TB", "serial": "S5P2NG0R123456",
		 "type": "disk", "tran": "nvme", "size": 1000204886016, "rota": false},
		{"name": "nvme0n1p1", "model": null, "serial": null,
		 "type": "part", "tran": "nvme", "size": 536870912, "rota": false},
		{"name": "sda", "model": "WDC WD40EFRX ", "serial": "WD-WCC7K1234567",
		 "type": "disk", "tran": "sata", "size": 4000787030016, "rota": true},
		{"name": "loop0", "model": null, "serial": null,
		 "type": "loop", "tran": null, "size": 4096, "rota": false},
		{"name": "sr0", "model": "DVD-RW", "serial": null,
		 "type": "rom", "tran": "sata", "size": 1073741312, "rota": true}
	]}`

	devices, err := parseLsblk([]byte(native))
	if err != nil {
		t.Fatalf("parseLsblk: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("len(devices) = %d, want 2 (partitions, loops and roms filtered)", len(devices))
	}

	nvme := devices[0]
	if nvme.Path != "/dev/nvme0n1" || nvme.Name != "nvme0n1" {
		t.Errorf("nvme path/name = %q/%q", nvme.Path, nvme.Name)
	}
	if nvme.SizeBytes != 1000204886016 || nvme.Rotational {
		t.Errorf("nvme size/rota = %d/%v", nvme.SizeBytes, nvme.Rotational)
	}

	hdd := devices[1]
	if hdd.Model != "WDC WD40EFRX" {
		t.Errorf("model not trimmed: %q", hdd.Model)
	}
	if !hdd.Rotational || hdd.Transport != "sata" {
		t.Errorf("hdd rota/tran = %v/%q", hdd.Rotational, hdd.Transport)
	}
}

func TestParseLsblkLegacyStrings(t *testing.T) {
	// util-linux < 2.37 quoted every value
	legacy := `{"blockdevices": [
		{"name": "sdb", "model": "ST4000DM004", "serial": "ZFN1QXYZ",
		 "type": "disk", "tran": "sata", "size": "4000787030016", "rota": "1"}
	]}`

	devices, err := parseLsblk([]byte(legacy))
	if err != nil {
		t.Fatalf("parseLsblk: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
	if devices[0].SizeBytes != 4000787030016 {
		t.Errorf("string size not parsed: %d", devices[0].SizeBytes)
	}
	if !devices[0].Rotational {
		t.Error("string rota \"1\" not parsed as true")
	}
}

func TestParseLsblkEmpty(t *testing.T) {
	devices, err := parseLsblk([]byte(`{"blockdevices": []}`))
	if err != nil {
		t.Fatalf("parseLsblk: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("len(devices) = %d, want 0", len(devices))
	}
}

func TestParseLsblkMalformed(t *testing.T) {
	_, err := parseLsblk([]byte(`lsblk: not a tty`))
	if !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}
