package data

import (
	"os"

	"github.com/l1jgo/pong/internal/core/event"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PaddleEntry places one paddle against the left or right wall.
type PaddleEntry struct {
	Side     string  `yaml:"side"` // "left" or "right"
	Length   float32 `yaml:"length"`
	Positive string  `yaml:"positive"` // key moving the paddle towards +y
	Negative string  `yaml:"negative"`
}

// BallEntry spawns one ball at the arena centre.
type BallEntry struct {
	Radius float32 `yaml:"radius"`
}

type sceneFile struct {
	Paddles []PaddleEntry `yaml:"paddles"`
	Balls   []BallEntry   `yaml:"balls"`
}

// Scene holds the initial entity layout.
type Scene struct {
	Paddles []Paddle
	Balls   []BallEntry
}

// Paddle is a validated PaddleEntry with parsed keys.
type Paddle struct {
	Right    bool
	Length   float32
	Positive event.Key
	Negative event.Key
}

// Count returns the number of entities the scene creates.
func (s *Scene) Count() int {
	return len(s.Paddles) + len(s.Balls)
}

// DefaultScene is two 200-long paddles (A/Q on the left, L/O on the right)
// and one ball of radius 20.
func DefaultScene() *Scene {
	return &Scene{
		Paddles: []Paddle{
			{Right: false, Length: 200, Positive: event.Key('a'), Negative: event.Key('q')},
			{Right: true, Length: 200, Positive: event.Key('l'), Negative: event.Key('o')},
		},
		Balls: []BallEntry{{Radius: 20}},
	}
}

// LoadScene loads the initial entity layout from a YAML file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read scene")
	}
	return ParseScene(raw)
}

// ParseScene decodes and validates a YAML scene.
func ParseScene(raw []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrap(err, "parse scene")
	}
	s := &Scene{
		Paddles: make([]Paddle, 0, len(f.Paddles)),
		Balls:   f.Balls,
	}
	for i, p := range f.Paddles {
		var right bool
		switch p.Side {
		case "left":
		case "right":
			right = true
		default:
			return nil, eris.Errorf("scene paddle %d: side %q must be left or right", i, p.Side)
		}
		if p.Length <= 0 {
			return nil, eris.Errorf("scene paddle %d: length must be positive", i)
		}
		pos, err := event.ParseKey(p.Positive)
		if err != nil {
			return nil, eris.Wrapf(err, "scene paddle %d positive key", i)
		}
		neg, err := event.ParseKey(p.Negative)
		if err != nil {
			return nil, eris.Wrapf(err, "scene paddle %d negative key", i)
		}
		if pos == neg {
			return nil, eris.Errorf("scene paddle %d: positive and negative keys are both %s", i, pos)
		}
		s.Paddles = append(s.Paddles, Paddle{Right: right, Length: p.Length, Positive: pos, Negative: neg})
	}
	for i, b := range f.Balls {
		if b.Radius < 0 {
			return nil, eris.Errorf("scene ball %d: negative radius", i)
		}
	}
	return s, nil
}
