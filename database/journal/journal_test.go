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

package journal_test

import (
	"testing"

	"github.com/mariogutval/flightsurety/database/journal"
	"github.com/mariogutval/flightsurety/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndIterate(t *testing.T) {
	j, err := journal.New("", nil)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(
		t,
		j.Append("airline.registered", map[string]string{
			"address": "airline-1",
		}),
	)
	require.NoError(
		t,
		j.Append("airline.funded", map[string]any{
			"address": "airline-1",
			"amount":  10,
		}),
	)

	var types []string
	var lastSeq uint64
	err = j.Records(func(seq uint64, record journal.Record) error {
		types = append(types, record.Type)
		lastSeq = seq
		assert.False(t, record.Timestamp.IsZero())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"airline.registered", "airline.funded"},
		types,
	)
	assert.Equal(t, uint64(1), lastSeq)
}

func TestAppendEvent(t *testing.T) {
	j, err := journal.New("", nil)
	require.NoError(t, err)
	defer j.Close()

	evt := event.NewEvent(
		"policy.purchased",
		map[string]string{"passenger": "pax-1"},
	)
	require.NoError(t, j.AppendEvent(evt))

	var got journal.Record
	err = j.Records(func(_ uint64, record journal.Record) error {
		got = record
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "policy.purchased", got.Type)
	data, ok := got.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pax-1", data["passenger"])
}

func TestPersistence(t *testing.T) {
	dataDir := t.TempDir()

	j, err := journal.New(dataDir, nil)
	require.NoError(t, err)
	require.NoError(t, j.Append("operational.changed", nil))
	require.NoError(t, j.Close())

	// Reopen and verify the record survived
	j, err = journal.New(dataDir, nil)
	require.NoError(t, err)
	defer j.Close()

	var count int
	err = j.Records(func(_ uint64, record journal.Record) error {
		count++
		assert.Equal(t, "operational.changed", record.Type)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
