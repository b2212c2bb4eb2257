package domain

// Profile stores a saved location the CLI can browse from.
type Profile struct {
	Name      string   `json:"name" yaml:"name"`
	IsDefault bool     `json:"is_default" yaml:"is_default"`
	Address   string   `json:"address,omitempty" yaml:"address,omitempty"`
	Location  Location `json:"location" yaml:"location"`
}
