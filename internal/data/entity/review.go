package entity

import (
	"github.com/google/uuid"
)

const MaxRating = 5

type Review struct {
	Base
	ListingID uuid.UUID `db:"listing_id"`
	UserID    uuid.UUID `db:"user_id"`
	Rating    int       `db:"rating"` // 1-5
	Comment   *string   `db:"comment"`
}
