package mem

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLogged(t *testing.T) {
	var buf bytes.Buffer
	lg := zerolog.New(&buf).Level(zerolog.DebugLevel)

	a := Logged[int64](nil, lg)
	slots, err := a.Allocate(4)
	require.NoError(t, err)
	a.Construct(&slots[0], 1)
	a.Destroy(&slots[0])
	a.Deallocate(slots, 4)

	lines := logLines(t, &buf)
	require.Len(t, lines, 2, "construct and destroy are trace level")

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "allocate", lines[0]["message"])
	assert.Equal(t, "int64", lines[0]["elem"])
	assert.EqualValues(t, 4, lines[0]["slots"])
	assert.EqualValues(t, 32, lines[0]["bytes"])

	assert.Equal(t, "deallocate", lines[1]["message"])
}

func TestLogged_Failure(t *testing.T) {
	var buf bytes.Buffer
	lg := zerolog.New(&buf).Level(zerolog.WarnLevel)

	spy := NewSpy[byte](nil)
	spy.FailAfter(0)
	a := Logged[byte](spy, lg)

	_, err := a.Allocate(10)
	require.ErrorIs(t, err, ErrExhausted)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "allocate failed", lines[0]["message"])
	assert.Contains(t, lines[0]["error"], "allocator exhausted")
}

func TestLogged_TraceLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	var buf bytes.Buffer
	lg := zerolog.New(&buf).Level(zerolog.TraceLevel)

	a := Logged[int](nil, lg)
	var slot int
	a.Construct(&slot, 3)
	a.Destroy(&slot)

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "construct", lines[0]["message"])
	assert.Equal(t, "destroy", lines[1]["message"])
}
