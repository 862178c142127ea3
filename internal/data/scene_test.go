package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/pong/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
paddles:
  - side: left
    length: 200
    positive: a
    negative: q
  - side: right
    length: 150
    positive: down
    negative: up
balls:
  - radius: 20
  - radius: 5
`

func TestLoadScene(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o600))

	s, err := LoadScene(path)
	require.NoError(t, err)

	require.Len(t, s.Paddles, 2)
	assert.Equal(t, Paddle{Right: false, Length: 200, Positive: event.Key('a'), Negative: event.Key('q')}, s.Paddles[0])
	assert.Equal(t, Paddle{Right: true, Length: 150, Positive: event.KeyDown, Negative: event.KeyUp}, s.Paddles[1])
	assert.Equal(t, []BallEntry{{Radius: 20}, {Radius: 5}}, s.Balls)
	assert.Equal(t, 4, s.Count())
}

func TestParseScene_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad side":   "paddles: [{side: top, length: 10, positive: a, negative: q}]",
		"no length":  "paddles: [{side: left, positive: a, negative: q}]",
		"bad key":    "paddles: [{side: left, length: 10, positive: hyper, negative: q}]",
		"same keys":  "paddles: [{side: left, length: 10, positive: a, negative: A}]",
		"neg radius": "balls: [{radius: -1}]",
		"not yaml":   "paddles: {",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadScene_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadScene(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultScene(t *testing.T) {
	t.Parallel()

	s := DefaultScene()
	assert.Equal(t, 3, s.Count())
	assert.False(t, s.Paddles[0].Right)
	assert.True(t, s.Paddles[1].Right)
}
