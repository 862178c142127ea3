package system

import (
	"github.com/l1jgo/pong/internal/core/ecs"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Last system of the update dispatcher.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Access() ecs.Access {
	return ecs.AccessOf(ecs.Structural())
}

func (s *CleanupSystem) Run(sc *ecs.Scope) error {
	if n := sc.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Uint64("tick", sc.Tick()))
	}
	return nil
}
