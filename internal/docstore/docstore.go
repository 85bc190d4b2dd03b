// Package docstore provides a collection-oriented document store on top of
// PostgreSQL JSONB. Records are matched by field-equality filters, the way
// the rest of the backend thinks about its data.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bakeshop/internal/database"
	"bakeshop/internal/logger"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store implements collection-based CRUD over the documents table.
type Store struct {
	db     *database.DB
	logger *logger.Logger
}

// New creates a document store backed by the given database.
func New(db *database.DB, log *logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log,
	}
}

// Insert stores a document under the given collection and id. The id is also
// embedded in the body as "_id" so that reads return it.
func (s *Store) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	body, err := asDocument(doc)
	if err != nil {
		return err
	}
	body["_id"] = id

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)`,
		collection, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

// Find returns all documents in the collection matching the field-equality
// filter, oldest first. A nil filter matches everything. Fields named in
// exclude are stripped from the returned bodies.
func (s *Store) Find(ctx context.Context, collection string, filter map[string]interface{}, exclude ...string) ([]json.RawMessage, error) {
	projection := "body"
	args := []interface{}{collection}

	if len(exclude) > 0 {
		projection = fmt.Sprintf("body - $%d::text[]", len(args)+1)
		args = append(args, exclude)
	}

	query := fmt.Sprintf(`SELECT %s FROM documents WHERE collection = $1`, projection)
	if filter != nil {
		encoded, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		query += fmt.Sprintf(` AND body @> $%d::jsonb`, len(args)+1)
		args = append(args, encoded)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return docs, nil
}

// FindByID returns a single document by id, or ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var body []byte
	err := s.db.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return json.RawMessage(body), nil
}

// DeleteOne removes a document by id. Deleting an absent document is not an
// error, matching the store semantics the handlers rely on.
func (s *Store) DeleteOne(ctx context.Context, collection, id string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

// UpdateOne merges set into the first document matching filter. When no
// document matches and upsertID is non-empty, a new document is created from
// the union of filter and set under that id.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter, set map[string]interface{}, upsertID string) error {
	encodedFilter, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("failed to encode filter: %w", err)
	}
	encodedSet, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	affected, err := s.db.Exec(ctx,
		`UPDATE documents SET body = body || $3::jsonb
		 WHERE ctid IN (
			SELECT ctid FROM documents
			WHERE collection = $1 AND body @> $2::jsonb
			ORDER BY created_at ASC LIMIT 1
		 )`,
		collection, encodedFilter, encodedSet)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}

	if affected == 0 {
		if upsertID == "" {
			return nil
		}
		doc := map[string]interface{}{}
		for k, v := range filter {
			doc[k] = v
		}
		for k, v := range set {
			doc[k] = v
		}
		return s.Insert(ctx, collection, upsertID, doc)
	}
	return nil
}

// SetField sets a single field on a document by id.
func (s *Store) SetField(ctx context.Context, collection, id, field string, value interface{}) error {
	return s.patchByID(ctx, collection, id, map[string]interface{}{field: value})
}

// UnsetField removes a single field from a document by id.
func (s *Store) UnsetField(ctx context.Context, collection, id, field string) error {
	affected, err := s.db.Exec(ctx,
		`UPDATE documents SET body = body - $3 WHERE collection = $1 AND id = $2`,
		collection, id, field)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) patchByID(ctx context.Context, collection, id string, patch map[string]interface{}) error {
	encoded, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}
	affected, err := s.db.Exec(ctx,
		`UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// asDocument converts any JSON-encodable value into a field map.
func asDocument(doc interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &body); err != nil {
		return nil, fmt.Errorf("document must encode to a JSON object: %w", err)
	}
	return body, nil
}
