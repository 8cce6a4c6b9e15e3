package session

// DumpConfig contains the parameters of the last memory dump export.
// Addresses are kept as entered, validation is done by the exporter.
type DumpConfig struct {
	StartAddress string
	EndAddress   string
	BreakBytes   string
	Strings      bool
}

// SetDumpInfo replaces the dump configuration as a whole.
func (s *Session) SetDumpInfo(cfg DumpConfig) {
	s.mu.Lock()
	s.dump = cfg
	s.mu.Unlock()
}

// DumpInfo returns the dump configuration.
func (s *Session) DumpInfo() DumpConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dump
}
