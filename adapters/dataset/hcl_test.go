package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"parking-cost/core/tariff"
	"parking-cost/internal/errors"
)

const sampleHCL = `
version = "2.0.0"
date    = "2024-05-01T12:00:00Z"

provider "City Parking" {
  id           = 1
  color        = "#1e88e5"
  beacon_major = 4

  zone "A1" {
    id           = 101
    beacon_minor = 9

    tariff {
      days        = ["weekdays"]
      start       = "08:00"
      end         = "19:00"
      periods     = { "15m" = 50, "1h" = 180 }
      free_period = "15m"
    }

    tariff {
      days    = ["sat", "SUN"]
      periods = { "86400" = 500 }
    }

    tariff {
      days    = ["someday"]
      periods = { "1h" = 1 }
    }

    region {
      points = [[0, 0], [0, 2], [2, 2], [2, 0]]
      hole {
        points = [[0.5, 0.5], [0.5, 1], [1, 1], [1, 0.5]]
      }
    }

    region {
      points = [[100, 0]]
    }
  }

  zone "A2" {
    id = 102
  }
}

group "Old Town" {
  id     = 1
  reason = "resident-permit"
  zones  = ["A1", "Z9"]
}
`

func TestParseHCL(t *testing.T) {
	c, err := ParseHCL([]byte(sampleHCL), "zones.hcl")
	if err != nil {
		t.Fatalf("ParseHCL() error = %v", err)
	}

	if c.Version != "2.0.0" || c.Date.Hour() != 12 {
		t.Errorf("header = %s %v", c.Version, c.Date)
	}
	if len(c.Providers) != 1 || c.Providers[0].Name != "City Parking" {
		t.Fatalf("providers = %+v", c.Providers)
	}
	if bm := c.Providers[0].BeaconMajor; bm == nil || *bm != 4 {
		t.Errorf("beacon_major not read")
	}

	z, ok := c.ZoneByCode("A1")
	if !ok {
		t.Fatal("A1 missing")
	}
	if len(z.Tariffs) != 2 {
		t.Fatalf("tariffs = %d, want 2", len(z.Tariffs))
	}

	weekday := z.Tariffs[0]
	if weekday.Days != tariff.Weekdays {
		t.Errorf("days = %v", weekday.Days)
	}
	if weekday.UnitPrices[900] != 50 || weekday.UnitPrices[3600] != 180 {
		t.Errorf("periods = %v", weekday.UnitPrices)
	}
	if *weekday.WindowStart != 8*3600 || *weekday.WindowEnd != 19*3600 {
		t.Errorf("window = %d-%d", *weekday.WindowStart, *weekday.WindowEnd)
	}
	if weekday.FreePeriod == nil || *weekday.FreePeriod != 900 {
		t.Errorf("free_period not read")
	}

	if z.Tariffs[1].Days != tariff.Weekend || z.Tariffs[1].UnitPrices[86400] != 500 {
		t.Errorf("weekend tariff = %+v", z.Tariffs[1])
	}

	if len(z.Regions) != 1 || len(z.Regions[0].InteriorRegions) != 1 {
		t.Errorf("regions = %+v", z.Regions)
	}

	if len(c.Groups) != 1 || len(c.Groups[0].Zones) != 1 {
		t.Errorf("groups = %+v", c.Groups)
	}
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `version = `},
		{"missing version", `provider "x" { id = 1 }`},
		{"unknown block", "version = \"1\"\nparking {}"},
		{"bad date", "version = \"1\"\ndate = \"yesterday\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.src), "bad.hcl")
			if !errors.IsType(err, errors.TypeParsing) {
				t.Errorf("ParseHCL() error = %v, want parsing error", err)
			}
		})
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"900", 900, false},
		{"15m", 900, false},
		{"1h30m", 5400, false},
		{"1.5s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSeconds(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSeconds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "zones.hcl")
	if err := os.WriteFile(hclPath, []byte(sampleHCL), 0644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "zones.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(hclPath, "")
	if err != nil || c.Version != "2.0.0" {
		t.Errorf("Load(hcl) = %v, %v", c, err)
	}
	c, err = Load(jsonPath, "")
	if err != nil || c.Version != "1.4.2" {
		t.Errorf("Load(json) = %v, %v", c, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.json"), ""); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("Load(missing) error = %v, want not found", err)
	}
	if _, err := Load(jsonPath, "yaml"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Load(yaml) error = %v, want input error", err)
	}
}
