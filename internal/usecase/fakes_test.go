package usecase

import (
	"context"
	"sort"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories. They honor the filter fields the services set,
// which is enough to check scoping and limits without a database.

type fakeListingRepo struct {
	items map[uuid.UUID]*entity.Listing
}

func (f *fakeListingRepo) Create(_ context.Context, l *entity.Listing) error {
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	if l, ok := f.items[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeListingRepo) FindBySlug(_ context.Context, slug string) (*entity.Listing, error) {
	for _, l := range f.items {
		if l.Slug == slug {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeListingRepo) match(filter repository.ListingFilter) []*entity.Listing {
	var out []*entity.Listing
	for _, l := range f.items {
		if filter.IsAvailable != nil && l.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.Location != nil && l.Location != *filter.Location {
			continue
		}
		if filter.ListingType != nil && string(l.ListingType) != *filter.ListingType {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		for _, o := range filter.Ordering {
			if o.Field == "price_per_night" && out[i].PricePerNight != out[j].PricePerNight {
				return (out[i].PricePerNight < out[j].PricePerNight) != o.Desc
			}
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeListingRepo) FindAll(_ context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	return paginate(f.match(filter), filter.Page), nil
}

func (f *fakeListingRepo) Count(_ context.Context, filter repository.ListingFilter) (int64, error) {
	return int64(len(f.match(filter))), nil
}

func (f *fakeListingRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, l := range f.items {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeListingRepo) Update(_ context.Context, l *entity.Listing) error {
	if _, ok := f.items[l.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeAmenityRepo struct {
	items      []*entity.Amenity
	links      map[uuid.UUID][]uuid.UUID
	replaceErr error
}

func (f *fakeAmenityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Amenity, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAmenityRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Amenity, error) {
	var out []*entity.Amenity
	for _, id := range ids {
		for _, a := range f.items {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (f *fakeAmenityRepo) FindAll(_ context.Context, page repository.Page) ([]*entity.Amenity, error) {
	return paginate(f.items, page), nil
}

func (f *fakeAmenityRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeAmenityRepo) FindByListingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]*entity.Amenity, error) {
	out := make(map[uuid.UUID][]*entity.Amenity)
	for _, listingID := range ids {
		for _, amenityID := range f.links[listingID] {
			a, _ := f.FindByID(context.Background(), amenityID)
			out[listingID] = append(out[listingID], a)
		}
	}
	return out, nil
}

// Replace implements repository.ListingAmenityRepository against the same link table.
func (f *fakeAmenityRepo) Replace(_ context.Context, listingID uuid.UUID, amenityIDs []uuid.UUID) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.links[listingID] = append([]uuid.UUID(nil), amenityIDs...)
	return nil
}

type fakeBookingRepo struct {
	items   map[uuid.UUID]*entity.Booking
	filters []repository.BookingFilter
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	if b, ok := f.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) match(filter repository.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range f.items {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.ListingID != nil && b.ListingID != *filter.ListingID {
			continue
		}
		if filter.Status != nil && string(b.Status) != *filter.Status {
			continue
		}
		if filter.CheckInFrom != nil && b.CheckInDate.Before(*filter.CheckInFrom) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, string(b.Status)) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		for _, o := range filter.Ordering {
			if o.Field == "check_in_date" && !out[i].CheckInDate.Equal(out[j].CheckInDate) {
				return out[i].CheckInDate.Before(out[j].CheckInDate) != o.Desc
			}
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeBookingRepo) FindAll(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	f.filters = append(f.filters, filter)
	return paginate(f.match(filter), filter.Page), nil
}

func (f *fakeBookingRepo) Count(_ context.Context, filter repository.BookingFilter) (int64, error) {
	return int64(len(f.match(filter))), nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := f.items[b.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeReviewRepo struct {
	items map[uuid.UUID]*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, r *entity.Review) error {
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	if r, ok := f.items[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) match(filter repository.ReviewFilter) []*entity.Review {
	var out []*entity.Review
	for _, r := range f.items {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.ListingID != nil && r.ListingID != *filter.ListingID {
			continue
		}
		if filter.Rating != nil && r.Rating != *filter.Rating {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeReviewRepo) FindAll(_ context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	return paginate(f.match(filter), filter.Page), nil
}

func (f *fakeReviewRepo) Count(_ context.Context, filter repository.ReviewFilter) (int64, error) {
	return int64(len(f.match(filter))), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, r *entity.Review) error {
	if _, ok := f.items[r.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeUserRepo struct {
	items map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.items[u.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

type fakeSessionRepo struct {
	items map[string]*entity.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	cp := *s
	f.items[s.Token.String()] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	s, ok := f.items[token]
	if !ok || !s.IsActive(fixedNow) {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	s, ok := f.items[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrNoRows
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(_ context.Context) error {
	return nil
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset >= len(items) {
		return nil
	}
	items = items[page.Offset:]
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// fixture bundles the fakes behind one repository.Repository.
type fixture struct {
	repo     *repository.Repository
	listings *fakeListingRepo
	amenity  *fakeAmenityRepo
	bookings *fakeBookingRepo
	reviews  *fakeReviewRepo
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	clock    Clock
}

// fixedNow is 2026-03-10 09:00 in UTC.
var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		listings: &fakeListingRepo{items: make(map[uuid.UUID]*entity.Listing)},
		amenity:  &fakeAmenityRepo{links: make(map[uuid.UUID][]uuid.UUID)},
		bookings: &fakeBookingRepo{items: make(map[uuid.UUID]*entity.Booking)},
		reviews:  &fakeReviewRepo{items: make(map[uuid.UUID]*entity.Review)},
		users:    &fakeUserRepo{items: make(map[uuid.UUID]*entity.User)},
		sessions: &fakeSessionRepo{items: make(map[string]*entity.Session)},
		clock:    Clock{Now: func() time.Time { return fixedNow }, Location: time.UTC},
	}
	f.repo = &repository.Repository{
		User:           f.users,
		Session:        f.sessions,
		Listing:        f.listings,
		Amenity:        f.amenity,
		ListingAmenity: f.amenity,
		Booking:        f.bookings,
		Review:         f.reviews,
	}
	return f
}

func (f *fixture) addListing(title, location string, price float64, available bool) *entity.Listing {
	l := &entity.Listing{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: fixedNow.Add(time.Duration(len(f.listings.items)) * time.Minute)},
		Slug:          uuid.NewString(),
		Title:         title,
		Location:      location,
		ListingType:   entity.ListingTypeApartment,
		PricePerNight: price,
		MaxGuests:     2,
		IsAvailable:   available,
	}
	f.listings.items[l.ID] = l
	return l
}

func (f *fixture) addBooking(owner uuid.UUID, listingID uuid.UUID, checkIn time.Time, status entity.BookingStatus) *entity.Booking {
	b := &entity.Booking{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: fixedNow.Add(time.Duration(len(f.bookings.items)) * time.Minute)},
		ListingID:    listingID,
		UserID:       owner,
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 2),
		Status:       status,
		TotalPrice:   200,
	}
	f.bookings.items[b.ID] = b
	return b
}

func (f *fixture) addReview(owner uuid.UUID, listingID uuid.UUID, rating int) *entity.Review {
	r := &entity.Review{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: fixedNow.Add(time.Duration(len(f.reviews.items)) * time.Minute)},
		ListingID: listingID,
		UserID:    owner,
		Rating:    rating,
	}
	f.reviews.items[r.ID] = r
	return r
}

func user() utils.Actor  { return utils.Actor{UserID: uuid.New()} }
func staff() utils.Actor { return utils.Actor{UserID: uuid.New(), IsStaff: true} }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testLogger = zap.NewNop()
