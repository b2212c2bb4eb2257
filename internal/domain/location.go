package domain

// Location identifies a point on earth.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Place is the human-readable area shown in the home header.
type Place struct {
	City     string `json:"city" yaml:"city"`
	District string `json:"district" yaml:"district"`
}

// Region is a map viewport.
type Region struct {
	Latitude       float64 `json:"latitude" yaml:"latitude"`
	Longitude      float64 `json:"longitude" yaml:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta" yaml:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta" yaml:"longitude_delta"`
}

// Center returns the viewport center.
func (r Region) Center() Location {
	return Location{Lat: r.Latitude, Lng: r.Longitude}
}
