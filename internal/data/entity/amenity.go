package entity

import "github.com/google/uuid"

type Amenity struct {
	BaseSimple
	Name        string `db:"name"`
	Description string `db:"description"`
}

// ListingAmenity is the bridge row between a listing and an amenity.
type ListingAmenity struct {
	ListingID uuid.UUID `db:"listing_id"`
	AmenityID uuid.UUID `db:"amenity_id"`
}
