package credential

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/logger"
)

var credentialsBucket = []byte("credentials")

// BoltStore persists the token in a bbolt file scoped to the installation
type BoltStore struct {
	db     *bolt.DB
	logger *zap.Logger
}

// OpenBoltStore opens (creating if needed) the credential database at path
func OpenBoltStore(path string, log *zap.Logger) (*BoltStore, error) {
	log = logger.OrNop(log)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create credential directory")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open credential store %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(credentialsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create credentials bucket")
	}

	log.Debug("Credential store opened", zap.String("path", path))
	return &BoltStore{db: db, logger: log}, nil
}

func (s *BoltStore) Current(_ context.Context) (string, bool, error) {
	var token []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(credentialsBucket).Get([]byte(TokenKey)); v != nil {
			token = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to read token", zap.Error(err))
		return "", false, errors.Wrap(err, "read token")
	}

	if len(token) == 0 {
		return "", false, nil
	}
	return string(token), true, nil
}

func (s *BoltStore) Set(_ context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Put([]byte(TokenKey), []byte(token))
	})
	if err != nil {
		s.logger.Error("Failed to store token", zap.Error(err))
		return errors.Wrap(err, "store token")
	}
	return nil
}

func (s *BoltStore) Clear(_ context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Delete([]byte(TokenKey))
	})
	if err != nil {
		s.logger.Error("Failed to clear token", zap.Error(err))
		return errors.Wrap(err, "clear token")
	}
	return nil
}

// Close releases the underlying database file
func (s *BoltStore) Close() error {
	return s.db.Close()
}
