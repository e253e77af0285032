package model

import "fmt"

// Airport represents an airfield served by the system. The pair
// (name, closest_big_city) is unique; the name alone is unique as
// well. ImagePath points at an uploaded image on local storage and
// is nil until an image has been attached.
type Airport struct {
	ID             uint64  // airports.id
	Name           string  // airports.name (unique)
	ClosestBigCity string  // airports.closest_big_city
	ImagePath      *string // airports.image_path (nullable)
}

// FullName renders the airport together with its city, e.g.
// "Amsterdam Schiphol Airport (Amsterdam)".
func (a Airport) FullName() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ClosestBigCity)
}

// Route connects a source airport to a destination airport. The
// (source, destination) pair is unique and the distance is a
// positive number of kilometres.
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
	Distance      uint32 // routes.distance (km, > 0)
}
