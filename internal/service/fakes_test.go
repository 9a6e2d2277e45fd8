package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/limiter"
	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/repository"
)

type fakeAccounts struct {
	byEmail map[string]*model.Account

	createErr error
	getErr    error
}

var _ repository.AccountRepository = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]*model.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[a.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *a
	f.byEmail[a.Email] = &cpy
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, id uuid.UUID, p model.Profile) (*model.Account, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			a.Profile = p
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

// fakeStore mimics the Postgres owned-record store, including the jsonb
// patch-merge semantics of Update and the existence-before-ownership order.
type fakeStore[T model.Payload] struct {
	recs []model.Record[T]
}

var _ repository.OwnedRepository[model.Project] = (*fakeStore[model.Project])(nil)

func (f *fakeStore[T]) List(_ context.Context, ownerID uuid.UUID) ([]model.Record[T], error) {
	out := []model.Record[T]{}
	// newest first: records are appended, so walk backwards
	for i := len(f.recs) - 1; i >= 0; i-- {
		if f.recs[i].OwnerID == ownerID {
			out = append(out, f.recs[i])
		}
	}
	return out, nil
}

func (f *fakeStore[T]) Create(_ context.Context, ownerID uuid.UUID, data T) (model.Record[T], error) {
	now := time.Now()
	rec := model.Record[T]{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   ownerID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.recs = append(f.recs, rec)
	return rec, nil
}

func (f *fakeStore[T]) Get(_ context.Context, id, ownerID uuid.UUID) (model.Record[T], error) {
	i := f.index(id)
	if i < 0 {
		return model.Record[T]{}, errs.ErrNotFound
	}
	if f.recs[i].OwnerID != ownerID {
		return model.Record[T]{}, errs.ErrForbidden
	}
	return f.recs[i], nil
}

func (f *fakeStore[T]) Update(_ context.Context, id, ownerID uuid.UUID, patch json.RawMessage) (model.Record[T], error) {
	i := f.index(id)
	if i < 0 {
		return model.Record[T]{}, errs.ErrNotFound
	}
	if f.recs[i].OwnerID != ownerID {
		return model.Record[T]{}, errs.ErrForbidden
	}
	merged, err := mergeJSON(f.recs[i].Data, patch)
	if err != nil {
		return model.Record[T]{}, err
	}
	f.recs[i].Data = merged
	f.recs[i].UpdatedAt = time.Now()
	return f.recs[i], nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	i := f.index(id)
	if i < 0 {
		return errs.ErrNotFound
	}
	if f.recs[i].OwnerID != ownerID {
		return errs.ErrForbidden
	}
	f.recs = append(f.recs[:i], f.recs[i+1:]...)
	return nil
}

func (f *fakeStore[T]) index(id uuid.UUID) int {
	for i := range f.recs {
		if f.recs[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeJSON replays the data || patch merge the real store does in SQL.
func mergeJSON[T model.Payload](data T, patch json.RawMessage) (T, error) {
	var zero T
	base, err := json.Marshal(data)
	if err != nil {
		return zero, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &m); err != nil {
		return zero, err
	}
	p := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &p); err != nil {
		return zero, err
	}
	for k, v := range p {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}
