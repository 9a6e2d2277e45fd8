package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/service"
	"github.com/resumebuilder/server/internal/token"
)

// memAccounts is an in-memory AccountRepository for transport tests.
type memAccounts struct {
	mu      sync.Mutex
	byEmail map[string]*model.Account
}

func newMemAccounts() *memAccounts { return &memAccounts{byEmail: map[string]*model.Account{}} }

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[a.Email]; ok {
		return errs.ErrAlreadyExists
	}
	cpy := *a
	m.byEmail[a.Email] = &cpy
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byEmail {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (m *memAccounts) UpdateProfile(_ context.Context, id uuid.UUID, p model.Profile) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byEmail {
		if a.ID == id {
			a.Profile = p
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

// memStore is an in-memory OwnedRepository mirroring the SQL store's
// ordering guarantees and jsonb merge semantics.
type memStore[T model.Payload] struct {
	mu   sync.Mutex
	recs []model.Record[T]
}

func (m *memStore[T]) List(_ context.Context, ownerID uuid.UUID) ([]model.Record[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Record[T]{}
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].OwnerID == ownerID {
			out = append(out, m.recs[i])
		}
	}
	return out, nil
}

func (m *memStore[T]) Create(_ context.Context, ownerID uuid.UUID, data T) (model.Record[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	rec := model.Record[T]{ID: uuid.Must(uuid.NewV4()), OwnerID: ownerID, Data: data, CreatedAt: now, UpdatedAt: now}
	m.recs = append(m.recs, rec)
	return rec, nil
}

func (m *memStore[T]) Get(_ context.Context, id, ownerID uuid.UUID) (model.Record[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return model.Record[T]{}, errs.ErrNotFound
	}
	if m.recs[i].OwnerID != ownerID {
		return model.Record[T]{}, errs.ErrForbidden
	}
	return m.recs[i], nil
}

func (m *memStore[T]) Update(_ context.Context, id, ownerID uuid.UUID, patch json.RawMessage) (model.Record[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return model.Record[T]{}, errs.ErrNotFound
	}
	if m.recs[i].OwnerID != ownerID {
		return model.Record[T]{}, errs.ErrForbidden
	}
	base, err := json.Marshal(m.recs[i].Data)
	if err != nil {
		return model.Record[T]{}, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return model.Record[T]{}, err
	}
	over := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &over); err != nil {
		return model.Record[T]{}, err
	}
	for k, v := range over {
		merged[k] = v
	}
	buf, err := json.Marshal(merged)
	if err != nil {
		return model.Record[T]{}, err
	}
	var data T
	if err := json.Unmarshal(buf, &data); err != nil {
		return model.Record[T]{}, err
	}
	m.recs[i].Data = data
	m.recs[i].UpdatedAt = time.Now()
	return m.recs[i], nil
}

func (m *memStore[T]) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return errs.ErrNotFound
	}
	if m.recs[i].OwnerID != ownerID {
		return errs.ErrForbidden
	}
	m.recs = append(m.recs[:i], m.recs[i+1:]...)
	return nil
}

func (m *memStore[T]) index(id uuid.UUID) int {
	for i := range m.recs {
		if m.recs[i].ID == id {
			return i
		}
	}
	return -1
}

// openLimiter never throttles.
type openLimiter struct{}

func (openLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (openLimiter) Success(context.Context, string, []byte) error { return nil }
func (openLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}

// newTestServer wires real services over in-memory repositories.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	accounts := newMemAccounts()
	projects := &memStore[model.Project]{}
	education := &memStore[model.Education]{}
	experiences := &memStore[model.Experience]{}
	resumes := &memStore[model.Resume]{}

	authSvc := service.NewAuthService(accounts, openLimiter{})
	tokens := token.NewManager([]byte("test-signing-key"), time.Hour)

	resumeSvc := service.NewResources[model.Resume](resumes)
	resumeBase := NewResourceHandler[model.Resume](resumeSvc, "Resume")
	assembly := service.NewAssembly(projects, education, experiences, resumes)

	return NewRouter(zap.NewNop(), tokens, Handlers{
		Auth:        NewAuthHandler(authSvc, tokens),
		Projects:    NewResourceHandler[model.Project](service.NewResources[model.Project](projects), "Project"),
		Education:   NewResourceHandler[model.Education](service.NewResources[model.Education](education), "Education"),
		Experiences: NewResourceHandler[model.Experience](service.NewResources[model.Experience](experiences), "Experience"),
		Resumes:     NewResumeHandler(resumeBase, assembly, authSvc),
	})
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a JSON response body into a map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	m := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}
