package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestListingSelectQuery(t *testing.T) {
	paris := "Paris"
	query, args := listingSelectQuery(ListingFilter{
		Location: &paris,
		Ordering: []OrderBy{{Field: "price_per_night", Desc: true}},
		Page:     Page{Limit: 20},
	})

	assert.Contains(t, query, " WHERE location = $1")
	assert.Contains(t, query, "ORDER BY price_per_night DESC, id ASC")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"Paris", 20, 0}, args)
}

func TestListingSelectQuery_SearchReusesPlaceholder(t *testing.T) {
	available := true
	query, args := listingSelectQuery(ListingFilter{IsAvailable: &available, Search: "50%_off"})

	assert.Contains(t, query, "is_available = $1 AND (title ILIKE $2 OR description ILIKE $2")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{true, `%50\%\_off%`}, args)
}

func TestOrderClause_DropsUnknownFields(t *testing.T) {
	got := orderClause([]OrderBy{{Field: "password"}}, listingOrderColumns, "created_at DESC")
	assert.Equal(t, " ORDER BY created_at DESC, id ASC", got)
}

func TestBookingSelectQuery_Upcoming(t *testing.T) {
	user := uuid.New()
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	statuses := []string{"pending", "confirmed"}

	query, args := bookingSelectQuery(BookingFilter{
		UserID:      &user,
		CheckInFrom: &today,
		Statuses:    statuses,
		Ordering:    []OrderBy{{Field: "check_in_date"}},
	})

	assert.Contains(t, query, "WHERE user_id = $1 AND check_in_date >= $2 AND status = ANY($3)")
	assert.Contains(t, query, "ORDER BY check_in_date ASC, id ASC")
	assert.Equal(t, []any{user, today, statuses}, args)
}

func TestReviewQueries(t *testing.T) {
	listing := uuid.New()
	rating := 5
	filter := ReviewFilter{ListingID: &listing, Rating: &rating, Page: Page{Limit: 10, Offset: 10}}

	query, args := reviewSelectQuery(filter)
	assert.Contains(t, query, "WHERE listing_id = $1 AND rating = $2")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{listing, 5, 10, 10}, args)

	count, countArgs := reviewCountQuery(filter)
	assert.Equal(t, "SELECT COUNT(*) FROM reviews WHERE listing_id = $1 AND rating = $2", count)
	assert.Equal(t, []any{listing, 5}, countArgs)
}
