package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// getJSON decodes the value at key into v. A missing key leaves v untouched.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func depthKey(depth int) string {
	return "depth-" + strconv.Itoa(depth)
}

// badgerLogger routes badger's log output into zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func newBadgerLogger(logger *zap.Logger) badgerLogger {
	return badgerLogger{s: logger.Named("badger").Sugar()}
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.s.Warnf(format, args...) }

// Badger is chatty at info level; its progress messages go to debug.
func (l badgerLogger) Infof(format string, args ...any)  { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
