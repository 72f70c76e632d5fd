package models

// Manifest is the generated package.json. Field order is the serialized key order.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// InitialVersion is the version every generated project starts at.
const InitialVersion = "0.1.0"

// NewManifest creates an empty, private manifest for name.
func NewManifest(name string, scripts map[string]string) *Manifest {
	if scripts == nil {
		scripts = map[string]string{}
	}
	return &Manifest{
		Name:            name,
		Version:         InitialVersion,
		Private:         true,
		Scripts:         scripts,
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}
