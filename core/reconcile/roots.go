package reconcile

// RootMap maps bundle root sentinels to live root container ids.
type RootMap struct {
	roots    map[string]string
	fallback string
}

// NewRootMap maps primarySentinel to primaryID and secondarySentinel to
// secondaryID. Unknown sentinels resolve to secondaryID.
func NewRootMap(primarySentinel, primaryID, secondarySentinel, secondaryID string) RootMap {
	return RootMap{
		roots: map[string]string{
			primarySentinel:   primaryID,
			secondarySentinel: secondaryID,
		},
		fallback: secondaryID,
	}
}

// Resolve returns the live root for sentinel, or the fallback root.
func (m RootMap) Resolve(sentinel string) string {
	if id, ok := m.roots[sentinel]; ok {
		return id
	}
	return m.fallback
}

// Known reports whether sentinel is mapped explicitly.
func (m RootMap) Known(sentinel string) bool {
	_, ok := m.roots[sentinel]
	return ok
}

// Fallback returns the root used for unknown sentinels and unmatched links.
func (m RootMap) Fallback() string {
	return m.fallback
}

// Sentinel returns the sentinel mapped to rootID, or "" when none is.
func (m RootMap) Sentinel(rootID string) string {
	for sentinel, id := range m.roots {
		if id == rootID {
			return sentinel
		}
	}
	return ""
}
