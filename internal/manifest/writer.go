package manifest

import (
	"encoding/json"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(prompt, material string, res Resolution) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Prompt:      prompt,
		Material:    material,
		Resolution:  res,
		Maps:        make(map[string]Map),
	}
}

// ComputeStats recalculates aggregate statistics from the recorded maps.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalMaps = len(m.Maps)
	for _, mp := range m.Maps {
		s.TotalOutputBytes += mp.Size
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
