package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD operations for any domain type.
// Records live under prefix+id; index entries under prefix+"idx:"+name+":"+key.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity.
type Index[T any] struct {
	name            string
	keyGen          func(*T) []string
	lookupTransform func(string) string // Optional transformation for lookups
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:  s,
		prefix: prefix,
	}
}

// WithIndex adds a unique secondary index to the entity.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	return e.WithIndexTransform(name, keyGen, nil)
}

// WithIndexTransform adds a secondary index with lookup transformation.
// The lookupTransform function is applied to search values before index lookup,
// enabling case-insensitive searches, normalization, etc.
func (e *Entity[T]) WithIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:            name,
		keyGen:          keyGen,
		lookupTransform: lookupTransform,
	})
	return e
}

func (e *Entity[T]) key(id string) []byte {
	return []byte(e.prefix + id)
}

func (e *Entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

func (e *Entity[T]) isIndexKey(key []byte) bool {
	return strings.HasPrefix(string(key[len(e.prefix):]), "idx:")
}

// Create creates a new entity with the given ID.
// Returns ErrAlreadyExists if the ID or any unique index key is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	db, err := e.store.conn(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return db.Update(func(txn *badger.Txn) error {
		return e.create(txn, id, entity, data)
	})
}

func (e *Entity[T]) create(txn *badger.Txn, id string, entity *T, data []byte) error {
	_, err := txn.Get(e.key(id))
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to check existing key: %w", err)
	}

	if err := e.checkIndexes(txn, entity, nil); err != nil {
		return err
	}

	if err := txn.Set(e.key(id), data); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return e.setIndexes(txn, id, entity)
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	db, err := e.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	var entity *T
	err = db.View(func(txn *badger.Txn) error {
		entity, err = e.load(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (e *Entity[T]) load(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get(e.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var entity T
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &entity); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity by secondary index.
// If the index has a lookup transform, it will be applied to the value before lookup.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	db, err := e.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	var entity *T
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}

		entity, err = e.load(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Update replaces an existing entity and re-indexes it.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	db, err := e.store.conn(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return db.Update(func(txn *badger.Txn) error {
		old, err := e.load(txn, id)
		if err != nil {
			return err
		}

		if err := e.checkIndexes(txn, entity, old); err != nil {
			return err
		}
		if err := e.deleteIndexes(txn, old); err != nil {
			return err
		}

		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.setIndexes(txn, id, entity)
	})
}

// Delete deletes an entity by ID and its index entries.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	db, err := e.store.conn(ctx)
	if err != nil {
		return err
	}

	return db.Update(func(txn *badger.Txn) error {
		entity, err := e.load(txn, id)
		if err != nil {
			return err
		}
		if err := e.deleteIndexes(txn, entity); err != nil {
			return err
		}
		if err := txn.Delete(e.key(id)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// List returns an iterator over all entities in key order.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		db, err := e.store.conn(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		_ = db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return err
				}

				if e.isIndexKey(it.Item().Key()) {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // Consumer stopped early
				}
			}
			return nil
		})
	}
}

// Count returns the number of stored entities.
func (e *Entity[T]) Count(ctx context.Context) (int, error) {
	db, err := e.store.conn(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if !e.isIndexKey(it.Item().Key()) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// checkIndexes fails with ErrAlreadyExists if a new index key of entity is
// already taken. Keys that old already owns are skipped.
func (e *Entity[T]) checkIndexes(txn *badger.Txn, entity, old *T) error {
	for _, idx := range e.indexes {
		owned := make(map[string]bool)
		if old != nil {
			for _, k := range idx.keyGen(old) {
				owned[k] = true
			}
		}

		for _, k := range idx.keyGen(entity) {
			if owned[k] {
				continue
			}
			_, err := txn.Get(e.indexKey(idx.name, k))
			if err == nil {
				return fmt.Errorf("index %s conflict on key %s: %w", idx.name, k, ErrAlreadyExists)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to check index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) setIndexes(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, k := range idx.keyGen(entity) {
			if err := txn.Set(e.indexKey(idx.name, k), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) deleteIndexes(txn *badger.Txn, entity *T) error {
	for _, idx := range e.indexes {
		for _, k := range idx.keyGen(entity) {
			if err := txn.Delete(e.indexKey(idx.name, k)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

// Replace drops every record of the entity, then creates the given ones.
// Writes are split across transactions when one grows too large, so a
// failure part-way leaves a partial set.
func (e *Entity[T]) Replace(ctx context.Context, ids []string, entities []*T) error {
	if len(ids) != len(entities) {
		return fmt.Errorf("replace: %d ids for %d entities", len(ids), len(entities))
	}

	db, err := e.store.conn(ctx)
	if err != nil {
		return err
	}

	if err := db.DropPrefix([]byte(e.prefix)); err != nil {
		return fmt.Errorf("failed to drop %s records: %w", e.prefix, err)
	}

	txn := db.NewTransaction(true)
	defer func() { txn.Discard() }()

	for i, entity := range entities {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to marshal entity %s: %w", ids[i], err)
		}

		err = e.create(txn, ids[i], entity, data)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := txn.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}
			txn = db.NewTransaction(true)
			err = e.create(txn, ids[i], entity, data)
		}
		if err != nil {
			return fmt.Errorf("create %s: %w", ids[i], err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
