package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyScores      = "scores"
)

// maxScoreEntries bounds the past-game score log. Older entries fall off
// the front.
const maxScoreEntries = 100

// UserPreferences stores user settings.
type UserPreferences struct {
	Difficulty  string    `json:"difficulty"`
	PlayerColor string    `json:"player_color"`
	LastPlayed  time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Difficulty:  "medium",
		PlayerColor: "white",
		LastPlayed:  time.Now(),
	}
}

// ScoreEntry records the outcome of one finished game. Gameplay never
// depends on these; the core only appends them.
type ScoreEntry struct {
	Outcome string    `json:"outcome"` // white, black or draw
	Moves   int       `json:"moves"`
	When    time.Time `json:"when"`
}

// Store wraps BadgerDB for the score log and preferences.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences.
func (s *Store) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults if not found.
func (s *Store) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// AppendScore appends a finished game to the bounded score log.
func (s *Store) AppendScore(e ScoreEntry) error {
	scores, err := s.Scores()
	if err != nil {
		return err
	}

	scores = append(scores, e)
	if len(scores) > maxScoreEntries {
		scores = scores[len(scores)-maxScoreEntries:]
	}

	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyScores), data)
	})
}

// Scores returns the past-game score log, oldest first.
func (s *Store) Scores() ([]ScoreEntry, error) {
	var scores []ScoreEntry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyScores))
		if err == badger.ErrKeyNotFound {
			return nil // Empty log
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &scores)
		})
	})

	return scores, err
}
