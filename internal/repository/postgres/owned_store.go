package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/model"
)

// Store is the single owned-record implementation behind the four resource
// kinds. Each instance is bound to one table; the tables share a layout of
// (id, owner_id, data jsonb, created_at, updated_at).
type Store[T model.Payload] struct {
	db *DB

	listQ   string
	insertQ string
	getQ    string
	lockQ   string
	updateQ string
	deleteQ string
}

// NewStore constructs a store bound to the given table.
func NewStore[T model.Payload](db *DB, table string) *Store[T] {
	return &Store[T]{
		db: db,
		listQ: fmt.Sprintf(`
SELECT id, owner_id, data, created_at, updated_at
FROM %s WHERE owner_id=$1
ORDER BY created_at DESC, id`, table),
		insertQ: fmt.Sprintf(`
INSERT INTO %s (id, owner_id, data)
VALUES ($1, $2, $3)
RETURNING created_at, updated_at`, table),
		getQ: fmt.Sprintf(`
SELECT id, owner_id, data, created_at, updated_at
FROM %s WHERE id=$1`, table),
		lockQ:   fmt.Sprintf(`SELECT owner_id FROM %s WHERE id=$1 FOR UPDATE`, table),
		updateQ: fmt.Sprintf(`UPDATE %s SET data = data || $2::jsonb, updated_at = now() WHERE id=$1 RETURNING data, created_at, updated_at`, table),
		deleteQ: fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, table),
	}
}

// List returns the owner's records, newest first.
func (s *Store[T]) List(ctx context.Context, ownerID uuid.UUID) ([]model.Record[T], error) {
	rows, err := s.db.Pool.Query(ctx, s.listQ, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Record[T]{}
	for rows.Next() {
		var rec model.Record[T]
		if err = rows.Scan(&rec.ID, &rec.OwnerID, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create persists data under a fresh id stamped with ownerID.
func (s *Store[T]) Create(ctx context.Context, ownerID uuid.UUID, data T) (model.Record[T], error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.Record[T]{}, err
	}
	rec := model.Record[T]{ID: id, OwnerID: ownerID, Data: data}
	row := s.db.Pool.QueryRow(ctx, s.insertQ, id, ownerID, data)
	if err := row.Scan(&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return model.Record[T]{}, err
	}
	return rec, nil
}

// Get loads a single record. A missing id is ErrNotFound; an id owned by a
// different account is ErrForbidden.
func (s *Store[T]) Get(ctx context.Context, id, ownerID uuid.UUID) (model.Record[T], error) {
	var rec model.Record[T]
	row := s.db.Pool.QueryRow(ctx, s.getQ, id)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Record[T]{}, errs.ErrNotFound
		}
		return model.Record[T]{}, err
	}
	if rec.OwnerID != ownerID {
		return model.Record[T]{}, errs.ErrForbidden
	}
	return rec, nil
}

// Update merges the JSON patch over the stored payload and bumps updated_at.
// The existence check runs before the ownership check inside one transaction.
func (s *Store[T]) Update(ctx context.Context, id, ownerID uuid.UUID, patch json.RawMessage) (rec model.Record[T], err error) {
	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Record[T]{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = s.lockOwned(ctx, tx, id, ownerID); err != nil {
		return model.Record[T]{}, err
	}

	rec = model.Record[T]{ID: id, OwnerID: ownerID}
	row := tx.QueryRow(ctx, s.updateQ, id, patch)
	if err = row.Scan(&rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return model.Record[T]{}, err
	}
	return rec, nil
}

// Delete removes the record after the same existence/ownership checks as Update.
func (s *Store[T]) Delete(ctx context.Context, id, ownerID uuid.UUID) (err error) {
	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = s.lockOwned(ctx, tx, id, ownerID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, s.deleteQ, id)
	return err
}

// lockOwned locks the row and enforces existence before ownership.
func (s *Store[T]) lockOwned(ctx context.Context, tx pgx.Tx, id, ownerID uuid.UUID) error {
	var owner uuid.UUID
	if err := tx.QueryRow(ctx, s.lockQ, id).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}
	if owner != ownerID {
		return errs.ErrForbidden
	}
	return nil
}
