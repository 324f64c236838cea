package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// File persists one envelope per key as a JSON file, the durable-storage
// analogue of the browser localStorage this layer replaces. Corrupt files
// are a miss, not an error.
type File struct {
	dir string
	ttl time.Duration

	Now func() time.Time
}

func NewFile(dir string, ttl time.Duration) (*File, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir, ttl: ttl, Now: time.Now}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) read(key string) (Envelope, bool) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		return Envelope{}, false
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache entry corrupt, treating as miss")
		return Envelope{}, false
	}
	return env, true
}

func (f *File) Get(key string) (json.RawMessage, bool) {
	env, ok := f.read(key)
	if !ok || !env.Fresh(f.Now(), f.ttl) {
		return nil, false
	}
	return env.Data, true
}

func (f *File) GetStale(key string) (json.RawMessage, bool) {
	env, ok := f.read(key)
	if !ok {
		return nil, false
	}
	return env.Data, true
}

func (f *File) Set(key string, payload json.RawMessage) {
	env := Envelope{Data: payload, Timestamp: f.Now()}
	b, err := json.Marshal(env)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache entry not serializable, skipping write")
		return
	}
	if err := os.WriteFile(f.path(key), b, 0o644); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache write failed")
	}
}

func (f *File) Invalidate(key string) {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache invalidate failed")
	}
}
