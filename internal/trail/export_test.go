package trail

// SetAfterLoad installs a hook that runs between the fetch and the persist
// of MemoryStore.Append.
func (s *MemoryStore) SetAfterLoad(fn func()) {
	s.afterLoad = fn
}
