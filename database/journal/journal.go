// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/mariogutval/flightsurety/event"
)

const (
	sequenceKey       = "journal_seq"
	sequenceBandwidth = 100
	gcInterval        = 5 * time.Minute
	gcDiscardRatio    = 0.5
)

// Record is a single append-only journal entry describing a committed
// mutation or settlement transfer
type Record struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// Journal is an append-only operation journal backed by badger. Entries are
// keyed by a monotonic sequence number and never rewritten
type Journal struct {
	db       *badger.DB
	seq      *badger.Sequence
	logger   *slog.Logger
	gcTicker *time.Ticker
	gcStopCh chan struct{}
	gcWg     sync.WaitGroup
	dataDir  string
	mu       sync.Mutex
}

// New creates a new journal with optional persistence using the provided
// data directory
func New(dataDir string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	j := &Journal{
		logger:  logger,
		dataDir: dataDir,
	}
	var journalDb *badger.DB
	var err error
	if dataDir == "" {
		// No dataDir, use in-memory config
		badgerOpts := badger.DefaultOptions("").
			WithLogger(newBadgerLogger(logger)).
			// The default INFO logging is a bit verbose
			WithLoggingLevel(badger.WARNING).
			WithInMemory(true)
		journalDb, err = badger.Open(badgerOpts)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		journalDir := filepath.Join(
			dataDir,
			"journal",
		)
		badgerOpts := badger.DefaultOptions(journalDir).
			WithLogger(newBadgerLogger(logger)).
			WithLoggingLevel(badger.WARNING)
		journalDb, err = badger.Open(badgerOpts)
		if err != nil {
			return nil, err
		}
		// Garbage collect the value log on disk-backed journals
		j.gcTicker = time.NewTicker(gcInterval)
		j.gcStopCh = make(chan struct{})
		j.gcWg.Add(1)
		go j.valueLogGc(j.gcTicker, j.gcStopCh)
	}
	j.db = journalDb
	seq, err := journalDb.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, errors.Join(err, journalDb.Close())
	}
	j.seq = seq
	return j, nil
}

func (j *Journal) valueLogGc(t *time.Ticker, stop <-chan struct{}) {
	defer j.gcWg.Done()
	for {
		select {
		case <-t.C:
		again:
			err := j.db.RunValueLogGC(gcDiscardRatio)
			if err != nil {
				if !errors.Is(err, badger.ErrNoRewrite) {
					j.logger.Warn(
						fmt.Sprintf("journal DB: GC failure: %s", err),
						"component", "journal",
					)
				}
			} else {
				// Run it again if the last run was successful
				goto again
			}
		case <-stop:
			return
		}
	}
}

// Append writes a new journal record
func (j *Journal) Append(recordType string, data any) error {
	record := Record{
		Type:      recordType,
		Timestamp: time.Now(),
		Data:      data,
	}
	val, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	seqNum, err := j.seq.Next()
	if err != nil {
		return fmt.Errorf("failed to get journal sequence: %w", err)
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seqNum)
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// AppendEvent writes a journal record for a published event
func (j *Journal) AppendEvent(evt event.Event) error {
	return j.Append(string(evt.Type), evt.Data)
}

// Records iterates the journal in sequence order, calling the provided
// function for each record. Iteration stops on the first error returned
func (j *Journal) Records(fn func(seq uint64, record Record) error) error {
	return j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			if len(key) != 8 {
				// Skip non-record keys (sequence bookkeeping)
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var record Record
			if err := json.Unmarshal(val, &record); err != nil {
				return fmt.Errorf(
					"failed to unmarshal journal record: %w",
					err,
				)
			}
			if err := fn(binary.BigEndian.Uint64(key), record); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the journal sequence and closes the underlying database
func (j *Journal) Close() error {
	var err error
	if j.gcTicker != nil {
		j.gcTicker.Stop()
		close(j.gcStopCh)
		j.gcWg.Wait()
	}
	if j.seq != nil {
		err = errors.Join(err, j.seq.Release())
	}
	if j.db != nil {
		err = errors.Join(err, j.db.Close())
	}
	return err
}
