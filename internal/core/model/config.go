package model

import "time"

// CubeKind tags a solve with the puzzle it was recorded on.
type CubeKind string

const (
	CubeSpeed   CubeKind = "speed"
	CubeClassic CubeKind = "classic"
)

// DefaultCubeKind is selected when the application starts.
const DefaultCubeKind = CubeSpeed

// CubeKinds lists the selectable kinds in display order.
func CubeKinds() []CubeKind {
	return []CubeKind{CubeSpeed, CubeClassic}
}

// Valid reports whether kind is one of the known cube kinds.
func (kind CubeKind) Valid() bool {
	for _, known := range CubeKinds() {
		if kind == known {
			return true
		}
	}
	return false
}

// Next returns the kind following this one, wrapping around.
func (kind CubeKind) Next() CubeKind {
	kinds := CubeKinds()
	for index, known := range kinds {
		if known == kind {
			return kinds[(index+1)%len(kinds)]
		}
	}
	return DefaultCubeKind
}

// Solve is one recorded time ready to be sent.
type Solve struct {
	Seconds float64
	Kind    CubeKind
}

// InfluxConfig holds the access credentials for the time-series store.
type InfluxConfig struct {
	URL     string
	Token   string
	Org     string
	Bucket  string
	Timeout time.Duration
}
