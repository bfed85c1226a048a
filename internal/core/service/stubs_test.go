package service

import (
	"context"
	"sort"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID   map[int64]*domain.Account
	nextID int64
	err    error // if set, every call returns this error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.byID {
		if existing.Username == a.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneAccount(a)
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, a := range r.byID {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) SoftDelete(_ context.Context, id int64) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	now := time.Now().UTC()
	a.DeletedAt = &now
	return nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubFarmRepo struct {
	byID   map[int64]*domain.Farm
	nextID int64
}

func newStubFarmRepo() *stubFarmRepo {
	return &stubFarmRepo{byID: make(map[int64]*domain.Farm)}
}

func (r *stubFarmRepo) Create(_ context.Context, f *domain.Farm) error {
	r.nextID++
	f.ID = r.nextID
	clone := *f
	r.byID[f.ID] = &clone
	return nil
}

func (r *stubFarmRepo) FindByID(_ context.Context, id int64) (*domain.Farm, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFarmRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Farm, error) {
	var out []*domain.Farm
	for _, f := range r.byID {
		if f.OwnerID == ownerID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFarmRepo) Update(_ context.Context, f *domain.Farm) error {
	if _, ok := r.byID[f.ID]; !ok {
		return domain.ErrFarmNotFound
	}
	clone := *f
	r.byID[f.ID] = &clone
	return nil
}

func (r *stubFarmRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrFarmNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCropRepo struct {
	byID   map[int64]*domain.CropRecord
	nextID int64
}

func newStubCropRepo() *stubCropRepo {
	return &stubCropRepo{byID: make(map[int64]*domain.CropRecord)}
}

func (r *stubCropRepo) Create(_ context.Context, c *domain.CropRecord) error {
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCropRepo) FindByID(_ context.Context, id int64) (*domain.CropRecord, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCropRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCropRepo) ListByFarm(_ context.Context, farmID int64) ([]*domain.CropRecord, error) {
	var out []*domain.CropRecord
	for _, c := range r.byID {
		if c.FarmID == farmID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCropRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCropRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCropRepo) DeleteByFarm(_ context.Context, farmID int64) error {
	for id, c := range r.byID {
		if c.FarmID == farmID {
			delete(r.byID, id)
		}
	}
	return nil
}

// plainHasher keeps tests fast; it is not a hash.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, digest string) bool  { return digest == "hashed:"+p }

type stubTokens struct {
	err error
}

func (s stubTokens) IssueAccessToken(subject string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "access:" + subject, time.Now().Add(time.Minute), nil
}

func (s stubTokens) IssueRefreshToken(subject string) (string, time.Time, error) {
	return "refresh:" + subject, time.Now().Add(time.Hour), nil
}

type stubThrottle struct {
	blocked  map[string]bool
	failures map[string]int
	resets   []string
	err      error
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{blocked: map[string]bool{}, failures: map[string]int{}}
}

func (t *stubThrottle) Allowed(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return !t.blocked[username], nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	return nil
}
