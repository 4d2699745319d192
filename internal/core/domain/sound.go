package domain

import "time"

// Radius and pagination bounds enforced by the sound query builder.
const (
	MinRadiusMeters = 500
	MaxRadiusMeters = 50000

	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10
)

// GeoPoint is a GeoJSON point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Valid reports whether the point has exactly two coordinates within
// geographic bounds.
func (p GeoPoint) Valid() bool {
	if p.Type != "Point" || len(p.Coordinates) != 2 {
		return false
	}
	return ValidLongitude(p.Coordinates[0]) && ValidLatitude(p.Coordinates[1])
}

func ValidLatitude(v float64) bool { return v >= -90 && v <= 90 }

func ValidLongitude(v float64) bool { return v >= -180 && v <= 180 }

// Sound is an audio clip pinned to a location. The raw audio bytes are kept
// out of JSON responses; clients fetch them from the dedicated data endpoint.
type Sound struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user"`
	Location    GeoPoint  `json:"location"`
	CategoryID  string    `json:"category"`
	Audio       []byte    `json:"-"`
	ContentType string    `json:"-"`
	CommentIDs  []string  `json:"comments"`
	CreatedAt   time.Time `json:"date"`
}

// ClampRadius bounds a requested search radius to [MinRadiusMeters,
// MaxRadiusMeters]. A zero or negative value means "not supplied" and yields
// the maximum.
func ClampRadius(meters float64) float64 {
	if meters <= 0 {
		return MaxRadiusMeters
	}
	if meters > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	if meters < MinRadiusMeters {
		return MinRadiusMeters
	}
	return meters
}

// ClampLimit bounds a page size to [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	return limit
}
