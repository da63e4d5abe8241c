// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Point is a geographic coordinate in signed decimal degrees, latitude first.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Round returns the point with both coordinates rounded to the given number
// of decimal digits. Registered points are always stored rounded, so equality
// checks against stored registrations must use rounded values.
func (p Point) Round(digits int) Point {
	scale := math.Pow(10, float64(digits))

	return Point{
		Latitude:  math.Round(p.Latitude*scale) / scale,
		Longitude: math.Round(p.Longitude*scale) / scale,
	}
}

// String renders the point as "lat, lon", the order used in all user-facing
// text and command arguments.
func (p Point) String() string {
	return fmt.Sprintf("%v, %v", p.Latitude, p.Longitude)
}

// Registration binds a subscriber to one registered point. A subscriber may
// hold any number of registrations with distinct rounded points; the store
// rejects duplicates of the same (subscriber, point) pair.
type Registration struct {
	ID         uuid.UUID // The unique identifier for the registration.
	Subscriber string    // The chat identity that owns this registration.
	Point      Point     // The registered point, rounded to the configured precision.
	CreatedAt  time.Time // Timestamp of when this registration was created.
}
