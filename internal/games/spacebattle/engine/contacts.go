package engine

// pairKey identifies an unordered pair of entities, lower ID first.
type pairKey struct {
	a, b EntityID
}

func makePairKey(a, b EntityID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Contact is a pair of entities whose boxes started overlapping this tick.
// The order of A and B carries no meaning.
type Contact struct {
	A, B *Entity
}

// broadPhase finds overlapping bodies. It reports a pair only on the tick
// the overlap begins, like a physics engine's contact-begin callback.
type broadPhase struct {
	touching map[pairKey]bool
}

func newBroadPhase() *broadPhase {
	return &broadPhase{touching: make(map[pairKey]bool)}
}

// interested reports whether either body asks for contacts with the other.
func interested(a, b *Body) bool {
	return a.ContactMask&b.Category != 0 || b.ContactMask&a.Category != 0
}

// detect returns the contacts that began since the previous call.
// Entities are visited in slice order so results are deterministic.
func (bp *broadPhase) detect(entities []*Entity) []Contact {
	var begun []Contact
	now := make(map[pairKey]bool, len(bp.touching))

	for i, a := range entities {
		if a.Removed || a.Body == nil {
			continue
		}
		boxA := a.Bounds()
		for _, b := range entities[i+1:] {
			if b.Removed || b.Body == nil || !interested(a.Body, b.Body) {
				continue
			}
			if !boxA.Intersects(b.Bounds()) {
				continue
			}
			key := makePairKey(a.ID, b.ID)
			now[key] = true
			if !bp.touching[key] {
				begun = append(begun, Contact{A: a, B: b})
			}
		}
	}

	bp.touching = now
	return begun
}
