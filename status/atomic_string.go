package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored strings in bytes so HUD lines stay bounded
const MaxStringLen = 32

// AtomicString holds a string behind an atomic pointer; the zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut at the last rune boundary within MaxStringLen
func (s *AtomicString) Store(val string) {
	val = truncateRunes(val, MaxStringLen)
	s.ptr.Store(&val)
}

// Swap stores val and returns the previous value
func (s *AtomicString) Swap(val string) string {
	val = truncateRunes(val, MaxStringLen)
	if old := s.ptr.Swap(&val); old != nil {
		return *old
	}
	return ""
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func truncateRunes(val string, limit int) string {
	if len(val) <= limit {
		return val
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(val[cut]) {
		cut--
	}
	return val[:cut]
}
