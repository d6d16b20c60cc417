package geofence

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// seedFile is the on-disk shape for preloading standard zones (e.g. the
// haram perimeter) into a freshly created group.
type seedFile struct {
	Zones []seedZone `yaml:"zones"`
}

type seedZone struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	RadiusMeters float64 `yaml:"radius_meters"`
	ZoneType     string  `yaml:"zone_type"`
}

// ParseSeedFile reads and validates a zone seed file without touching the DB.
func ParseSeedFile(path string) ([]CreateInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(file.Zones) == 0 {
		return nil, fmt.Errorf("seed file has no zones")
	}

	inputs := make([]CreateInput, 0, len(file.Zones))
	for i, z := range file.Zones {
		in := CreateInput{
			Name:         z.Name,
			Description:  z.Description,
			Latitude:     z.Latitude,
			Longitude:    z.Longitude,
			RadiusMeters: z.RadiusMeters,
			ZoneType:     z.ZoneType,
		}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("zone %d (%q): %w", i, z.Name, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// SeedFromYAML creates every zone in the file for the given group.
// Returns the number of zones created.
func SeedFromYAML(path, groupID, createdBy string) (int, error) {
	inputs, err := ParseSeedFile(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, in := range inputs {
		in.GroupID = groupID
		in.CreatedBy = createdBy
		if _, err := (Registry{}).Create(in); err != nil {
			return created, fmt.Errorf("seed zone %q: %w", in.Name, err)
		}
		created++
	}
	return created, nil
}
