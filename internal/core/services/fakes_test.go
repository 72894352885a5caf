package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// --- in-memory directory + applications with transactional rollback ---

type memStore struct {
	mu         sync.Mutex
	users      map[uint]models.User
	apps       map[string]models.Application
	nextUserID uint

	// injected failures
	updateRoleErr   error
	markAcceptedErr error
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uint]models.User{},
		apps:  map[string]models.Application{},
	}
}

func (s *memStore) Users() repositories.UserRepository               { return &memUsers{s} }
func (s *memStore) Applications() repositories.ApplicationRepository { return &memApps{s} }

func (s *memStore) addUser(email string, role domain.Role) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := models.User{ID: s.nextUserID, Email: email, Role: role}
	s.users[u.ID] = u
	return &u
}

func (s *memStore) userByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *memStore) app(id string) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	return a, ok
}

// WithinTransaction snapshots state and restores it when fn fails
func (s *memStore) WithinTransaction(ctx context.Context, fn func(users repositories.UserRepository, apps repositories.ApplicationRepository) error) error {
	s.mu.Lock()
	users := make(map[uint]models.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	apps := make(map[string]models.Application, len(s.apps))
	for k, v := range s.apps {
		apps[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.Users(), s.Applications()); err != nil {
		s.mu.Lock()
		s.users = users
		s.apps = apps
		s.mu.Unlock()
		return err
	}
	return nil
}

func duplicateErr(key string) error {
	return &mysql.MySQLError{Number: 1062, Message: fmt.Sprintf("Duplicate entry for key '%s'", key)}
}

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return duplicateErr("users.idx_users_email")
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.s.userByEmail(email)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUsers) UpdateRole(_ context.Context, id uint, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateRoleErr != nil {
		return r.s.updateRoleErr
	}
	u, ok := r.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	r.s.users[id] = u
	return nil
}

func (r *memUsers) ClearRole(_ context.Context, role domain.Role) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.users {
		if u.Role == role {
			u.Role = domain.RoleNone
			r.s.users[id] = u
			n++
		}
	}
	return n, nil
}

func (r *memUsers) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memUsers) sorted(keep func(models.User) bool) []*models.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.s.users {
		if keep(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memUsers) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := r.sorted(func(models.User) bool { return true })
	total := int64(len(all))
	if offset >= len(all) {
		return []*models.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memUsers) ListByRole(_ context.Context, role domain.Role) ([]*models.User, error) {
	return r.sorted(func(u models.User) bool { return u.Role == role }), nil
}

type memApps struct{ s *memStore }

func (r *memApps) Create(_ context.Context, app *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.apps {
		if a.PendingEmail != nil && app.PendingEmail != nil && *a.PendingEmail == *app.PendingEmail {
			return duplicateErr("applications.idx_applications_pending_email")
		}
		if a.ApartmentID == app.ApartmentID {
			return duplicateErr("applications.idx_applications_apartment_id")
		}
	}
	r.s.apps[app.ID] = *app
	return nil
}

func (r *memApps) GetByID(_ context.Context, id string) (*models.Application, error) {
	a, ok := r.s.app(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memApps) GetByIDForUpdate(ctx context.Context, id string) (*models.Application, error) {
	return r.GetByID(ctx, id)
}

func (r *memApps) find(keep func(models.Application) bool) []*models.Application {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Application{}
	for _, a := range r.s.apps {
		if keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out
}

func (r *memApps) FindPendingByEmail(_ context.Context, email string) (*models.Application, error) {
	found := r.find(func(a models.Application) bool { return a.Email == email && a.Status == domain.StatusPending })
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return found[0], nil
}

func (r *memApps) FindByApartmentID(_ context.Context, apartmentID string) (*models.Application, error) {
	found := r.find(func(a models.Application) bool { return a.ApartmentID == apartmentID })
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return found[0], nil
}

func (r *memApps) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]*models.Application, error) {
	return r.find(func(a models.Application) bool { return a.Status == status }), nil
}

func (r *memApps) ListByEmail(_ context.Context, email string) ([]*models.Application, error) {
	return r.find(func(a models.Application) bool { return a.Email == email }), nil
}

func (r *memApps) List(_ context.Context) ([]*models.Application, error) {
	return r.find(func(models.Application) bool { return true }), nil
}

func (r *memApps) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	apps, _ := r.ListByStatus(ctx, status)
	return int64(len(apps)), nil
}

func (r *memApps) MarkAccepted(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.markAcceptedErr != nil {
		return r.s.markAcceptedErr
	}
	a, ok := r.s.apps[id]
	if !ok || a.Status != domain.StatusPending {
		return gorm.ErrRecordNotFound
	}
	a.Status = domain.StatusAccepted
	a.PendingEmail = nil
	a.AcceptedAt = &at
	r.s.apps[id] = a
	return nil
}

func (r *memApps) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.apps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.apps, id)
	return nil
}

// --- func-field fakes ---

type mockCouponRepo struct {
	getByCodeFn      func(ctx context.Context, code string) (*models.Coupon, error)
	createFn         func(ctx context.Context, c *models.Coupon) error
	listFn           func(ctx context.Context, onlyAvailable bool) ([]*models.Coupon, error)
	setAvailableFn   func(ctx context.Context, id uint, available bool) error
	deleteFn         func(ctx context.Context, id uint) error
	disableExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCouponRepo) GetByID(_ context.Context, _ uint) (*models.Coupon, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCouponRepo) List(ctx context.Context, onlyAvailable bool) ([]*models.Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx, onlyAvailable)
	}
	return nil, nil
}

func (m *mockCouponRepo) SetAvailable(ctx context.Context, id uint, available bool) error {
	if m.setAvailableFn != nil {
		return m.setAvailableFn(ctx, id, available)
	}
	return nil
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCouponRepo) DisableExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.disableExpiredFn != nil {
		return m.disableExpiredFn(ctx, now)
	}
	return 0, nil
}

type mockPaymentRepo struct {
	created []*models.Payment
	err     error
}

func (m *mockPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, p)
	return nil
}

func (m *mockPaymentRepo) ListByEmail(_ context.Context, email string) ([]*models.Payment, error) {
	out := []*models.Payment{}
	for _, p := range m.created {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockProcessor struct {
	lastReq *PaymentIntentRequest
	err     error
}

func (m *mockProcessor) CreatePaymentIntent(_ context.Context, req *PaymentIntentRequest) (*PaymentIntent, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

type mockApartmentRepo struct {
	lastFilter repositories.ApartmentFilter
	lastOffset int
	lastLimit  int
	items      []*models.Apartment
}

func (m *mockApartmentRepo) Create(_ context.Context, apt *models.Apartment) error {
	apt.ID = uint(len(m.items) + 1)
	m.items = append(m.items, apt)
	return nil
}

func (m *mockApartmentRepo) GetByID(_ context.Context, id uint) (*models.Apartment, error) {
	for _, a := range m.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApartmentRepo) List(_ context.Context, filter repositories.ApartmentFilter, offset, limit int) ([]*models.Apartment, int64, error) {
	m.lastFilter, m.lastOffset, m.lastLimit = filter, offset, limit
	return m.items, int64(len(m.items)), nil
}

// newApartmentCatalog returns a catalog holding apartments 1..n
func newApartmentCatalog(n int) *mockApartmentRepo {
	repo := &mockApartmentRepo{}
	for i := 0; i < n; i++ {
		_ = repo.Create(context.Background(), &models.Apartment{ApartmentNo: fmt.Sprintf("%d", 100+i+1), Rent: 1000})
	}
	return repo
}

type mockAnnouncementRepo struct {
	items []*models.Announcement
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *models.Announcement) error {
	m.items = append(m.items, a)
	return nil
}

func (m *mockAnnouncementRepo) List(_ context.Context) ([]*models.Announcement, error) {
	return m.items, nil
}

type recordingRecorder struct {
	transitions []string
}

func (r *recordingRecorder) RecordRequest(string, string, int, time.Duration) {}
func (r *recordingRecorder) RecordTransition(t string)                        { r.transitions = append(r.transitions, t) }
