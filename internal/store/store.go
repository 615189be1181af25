// Package store owns the lifecycle of the local database and fans out change
// notifications to subscribers. Services issue SQL through DB() and call
// Notify after writes; anything rendering live views subscribes to the
// collections it cares about.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/nutriplan/nutriplan-cli/internal/db"
)

// Collection names, matching the table names.
const (
	CollectionProfile      = "user_profile"
	CollectionRecipes      = "recipes"
	CollectionPantryItems  = "pantry_items"
	CollectionMealPlans    = "meal_plans"
	CollectionGroceryLists = "grocery_lists"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed mutation. ID is 0 for bulk operations.
type Change struct {
	Collection string
	Op         Op
	ID         int64
}

type subscriber struct {
	ch          chan Change
	collections map[string]bool
}

// Store is an explicitly constructed handle: Open it, pass it down, Close it.
type Store struct {
	sqldb *sql.DB

	mu      sync.Mutex
	subs    map[int]*subscriber
	nextSub int
}

// Open opens (creating if needed) the database at path and brings the schema
// up to date.
func Open(path string) (*Store, error) {
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return &Store{sqldb: sqldb, subs: map[int]*subscriber{}}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	for id, sub := range s.subs {
		close(sub.ch)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	if err := s.sqldb.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (s *Store) DB() *sql.DB {
	return s.sqldb
}

// Subscribe registers interest in the named collections (all collections when
// none are given). The returned cancel func unregisters and closes the
// channel; it is safe to call more than once.
func (s *Store) Subscribe(collections ...string) (<-chan Change, func()) {
	sub := &subscriber{ch: make(chan Change, 16)}
	if len(collections) > 0 {
		sub.collections = make(map[string]bool, len(collections))
		for _, c := range collections {
			sub.collections[c] = true
		}
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub.ch)
			}
			s.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

// Notify publishes a change to interested subscribers. A subscriber that has
// fallen behind misses the event rather than blocking the writer.
func (s *Store) Notify(c Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.collections != nil && !sub.collections[c.Collection] {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}
