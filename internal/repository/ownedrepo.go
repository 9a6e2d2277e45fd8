package repository

import (
	"context"
	"encoding/json"

	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/model"
)

// OwnedRepository provides owner-scoped access to one kind of record. The same
// interface is instantiated for projects, education, experiences and resumes.
//
// Update and Delete check existence before ownership: a missing id yields
// ErrNotFound no matter who asks, a foreign id yields ErrForbidden. The order
// is part of the contract and must not be swapped.
type OwnedRepository[T model.Payload] interface {
	// List returns all records owned by ownerID, newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Record[T], error)

	// Create persists data under a fresh id stamped with ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, data T) (model.Record[T], error)

	// Get loads a single record, enforcing the existence/ownership order.
	Get(ctx context.Context, id, ownerID uuid.UUID) (model.Record[T], error)

	// Update merges the JSON patch over the stored payload. Fields absent from
	// the patch are left unchanged.
	Update(ctx context.Context, id, ownerID uuid.UUID, patch json.RawMessage) (model.Record[T], error)

	// Delete removes the record.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
