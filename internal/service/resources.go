package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/repository"
)

// Resources validates input and delegates to one owned-record store. One
// instance per record kind; the ownership rules live in the repository.
type Resources[T model.Payload] struct {
	repo repository.OwnedRepository[T]
}

// NewResources constructs a resource service over the given store.
func NewResources[T model.Payload](repo repository.OwnedRepository[T]) *Resources[T] {
	return &Resources[T]{repo: repo}
}

// List returns the owner's records, newest first.
func (s *Resources[T]) List(ctx context.Context, ownerID uuid.UUID) ([]model.Record[T], error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("validation: empty ownerID")
	}
	return s.repo.List(ctx, ownerID)
}

// Create validates required fields and persists a new record for the owner.
func (s *Resources[T]) Create(ctx context.Context, ownerID uuid.UUID, data T) (model.Record[T], error) {
	if ownerID == uuid.Nil {
		return model.Record[T]{}, errors.New("validation: empty ownerID")
	}
	if err := data.Validate(); err != nil {
		return model.Record[T]{}, err
	}
	return s.repo.Create(ctx, ownerID, data)
}

// Get loads a single owned record.
func (s *Resources[T]) Get(ctx context.Context, id, ownerID uuid.UUID) (model.Record[T], error) {
	if id == uuid.Nil || ownerID == uuid.Nil {
		return model.Record[T]{}, errors.New("validation: empty id/ownerID")
	}
	return s.repo.Get(ctx, id, ownerID)
}

// Update applies a partial JSON patch to an owned record. Required-field
// validation does not run here: patches are free-form by contract.
func (s *Resources[T]) Update(ctx context.Context, id, ownerID uuid.UUID, patch json.RawMessage) (model.Record[T], error) {
	if id == uuid.Nil || ownerID == uuid.Nil {
		return model.Record[T]{}, errors.New("validation: empty id/ownerID")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(patch, &obj); err != nil {
		return model.Record[T]{}, fmt.Errorf("%w: body must be a JSON object", errs.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, ownerID, patch)
}

// Delete removes an owned record.
func (s *Resources[T]) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if id == uuid.Nil || ownerID == uuid.Nil {
		return errors.New("validation: empty id/ownerID")
	}
	return s.repo.Delete(ctx, id, ownerID)
}
