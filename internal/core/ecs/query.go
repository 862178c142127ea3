package ecs

// Column is satisfied by *Storage[T] and Reader[T], so joins accept either
// a writable storage or a read-only view.
type Column[T any] interface {
	column() *Storage[T]
}

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
// Components reached through a Reader must not be modified by fn.
func Each2[A, B any](ca Column[A], cb Column[B], fn func(EntityID, *A, *B)) {
	sa, sb := ca.column(), cb.column()
	if sa.Len() <= sb.Len() {
		for i, id := range sa.ids {
			if j, ok := sb.index[id]; ok {
				fn(id, &sa.dense[i], &sb.dense[j])
			}
		}
	} else {
		for j, id := range sb.ids {
			if i, ok := sa.index[id]; ok {
				fn(id, &sa.dense[i], &sb.dense[j])
			}
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](ca Column[A], cb Column[B], cc Column[C], fn func(EntityID, *A, *B, *C)) {
	sa, sb, sc := ca.column(), cb.column(), cc.column()

	// Iterate the smallest store
	ids := sa.ids
	if sb.Len() < len(ids) {
		ids = sb.ids
	}
	if sc.Len() < len(ids) {
		ids = sc.ids
	}

	for _, id := range ids {
		i, ok := sa.index[id]
		if !ok {
			continue
		}
		j, ok := sb.index[id]
		if !ok {
			continue
		}
		k, ok := sc.index[id]
		if !ok {
			continue
		}
		fn(id, &sa.dense[i], &sb.dense[j], &sc.dense[k])
	}
}
