package state

// ValidateChain walks the stored chain from genesis to tip verifying hash
// recomputation, parent linkage and the difficulty each sealed block was
// mined under. It is a tamper-detection read: it never repairs anything,
// and a detected violation means the chain must not be extended.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.ValidateChain(s.evHandler)
}
