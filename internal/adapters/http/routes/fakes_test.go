package routes

import (
	"context"
	"sync"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// memDB backs the user and application repositories for route tests
type memDB struct {
	mu     sync.Mutex
	users  []*models.User
	apps   map[string]*models.Application
	nextID uint
}

func newMemDB() *memDB {
	return &memDB{apps: map[string]*models.Application{}}
}

func (m *memDB) WithinTransaction(ctx context.Context, fn func(users repositories.UserRepository, apps repositories.ApplicationRepository) error) error {
	return fn(memUserRepo{m}, memAppRepo{m})
}

type memUserRepo struct{ m *memDB }

func (r memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memUserRepo) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.nextID++
	user.ID = r.m.nextID
	cp := *user
	r.m.users = append(r.m.users, &cp)
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r memUserRepo) UpdateRole(_ context.Context, id uint, role domain.Role) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r memUserRepo) ClearRole(_ context.Context, role domain.Role) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, u := range r.m.users {
		if u.Role == role {
			u.Role = domain.RoleNone
			n++
		}
	}
	return n, nil
}

func (r memUserRepo) Delete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, u := range r.m.users {
		if u.ID == id {
			r.m.users = append(r.m.users[:i], r.m.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r memUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	total := int64(len(r.m.users))
	if offset >= len(r.m.users) {
		return []*models.User{}, total, nil
	}
	end := offset + limit
	if end > len(r.m.users) {
		end = len(r.m.users)
	}
	return r.m.users[offset:end], total, nil
}

func (r memUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type memAppRepo struct{ m *memDB }

func (r memAppRepo) filter(match func(*models.Application) bool) []*models.Application {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.Application{}
	for _, a := range r.m.apps {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

func (r memAppRepo) first(match func(*models.Application) bool) (*models.Application, error) {
	found := r.filter(match)
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return found[0], nil
}

func (r memAppRepo) Create(_ context.Context, app *models.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *app
	r.m.apps[app.ID] = &cp
	return nil
}

func (r memAppRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	return r.first(func(a *models.Application) bool { return a.ID == id })
}

func (r memAppRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Application, error) {
	return r.GetByID(ctx, id)
}

func (r memAppRepo) FindPendingByEmail(_ context.Context, email string) (*models.Application, error) {
	return r.first(func(a *models.Application) bool { return a.Email == email && a.Status == domain.StatusPending })
}

func (r memAppRepo) FindByApartmentID(_ context.Context, apartmentID string) (*models.Application, error) {
	return r.first(func(a *models.Application) bool { return a.ApartmentID == apartmentID })
}

func (r memAppRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]*models.Application, error) {
	return r.filter(func(a *models.Application) bool { return a.Status == status }), nil
}

func (r memAppRepo) ListByEmail(_ context.Context, email string) ([]*models.Application, error) {
	return r.filter(func(a *models.Application) bool { return a.Email == email }), nil
}

func (r memAppRepo) List(_ context.Context) ([]*models.Application, error) {
	return r.filter(func(*models.Application) bool { return true }), nil
}

func (r memAppRepo) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	apps, _ := r.ListByStatus(ctx, status)
	return int64(len(apps)), nil
}

func (r memAppRepo) MarkAccepted(_ context.Context, id string, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok || a.Status != domain.StatusPending {
		return gorm.ErrRecordNotFound
	}
	a.Status = domain.StatusAccepted
	a.PendingEmail = nil
	a.AcceptedAt = &at
	return nil
}

func (r memAppRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.apps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.apps, id)
	return nil
}

// emptyPayments is a ledger with no entries
type emptyPayments struct{}

func (emptyPayments) Create(context.Context, *models.Payment) error { return nil }

func (emptyPayments) ListByEmail(context.Context, string) ([]*models.Payment, error) {
	return nil, nil
}

// fixedCatalog holds apartments 1..10
type fixedCatalog struct{}

func (fixedCatalog) Create(context.Context, *models.Apartment) error { return nil }

func (fixedCatalog) GetByID(_ context.Context, id uint) (*models.Apartment, error) {
	if id == 0 || id > 10 {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Apartment{ID: id, Rent: 1000}, nil
}

func (fixedCatalog) List(context.Context, repositories.ApartmentFilter, int, int) ([]*models.Apartment, int64, error) {
	return nil, 0, nil
}
