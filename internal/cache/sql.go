package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// SQL stores envelopes in a MySQL table so cached pricing survives gateway
// restarts. Query failures degrade to cache misses; the DB backing the cache
// must never become a hard dependency of the read path.
type SQL struct {
	DB  *sql.DB
	ttl time.Duration

	Now func() time.Time
}

func NewSQL(db *sql.DB, ttl time.Duration) *SQL {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQL{DB: db, ttl: ttl, Now: time.Now}
}

// MigrateSQL creates the cache table when missing.
func MigrateSQL(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			cache_key   VARCHAR(191) NOT NULL PRIMARY KEY,
			payload     LONGTEXT NOT NULL,
			captured_at DATETIME(3) NOT NULL
		)`)
	return err
}

func (s *SQL) read(key string) (Envelope, bool) {
	var (
		payload    string
		capturedAt time.Time
	)
	err := s.DB.QueryRow(`SELECT payload, captured_at FROM cache_entries WHERE cache_key = ?`, key).
		Scan(&payload, &capturedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache select failed, treating as miss")
		}
		return Envelope{}, false
	}
	if !json.Valid([]byte(payload)) {
		logrus.WithField("key", key).Warn("cache entry corrupt, treating as miss")
		return Envelope{}, false
	}
	return Envelope{Data: json.RawMessage(payload), Timestamp: capturedAt}, true
}

func (s *SQL) Get(key string) (json.RawMessage, bool) {
	env, ok := s.read(key)
	if !ok || !env.Fresh(s.Now(), s.ttl) {
		return nil, false
	}
	return env.Data, true
}

func (s *SQL) GetStale(key string) (json.RawMessage, bool) {
	env, ok := s.read(key)
	if !ok {
		return nil, false
	}
	return env.Data, true
}

func (s *SQL) Set(key string, payload json.RawMessage) {
	_, err := s.DB.Exec(`
		INSERT INTO cache_entries (cache_key, payload, captured_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), captured_at = VALUES(captured_at)`,
		key, string(payload), s.Now())
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache upsert failed")
	}
}

func (s *SQL) Invalidate(key string) {
	if _, err := s.DB.Exec(`DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache invalidate failed")
	}
}
