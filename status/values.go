package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen bounds stored strings in bytes; detector messages and uuids fit
const MaxStringLen = 40

// AtomicString is a string slot safe for one writer and many readers
// Zero value holds ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut at the last rune boundary within MaxStringLen
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// AtomicFloat is a float64 held as its bit pattern
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}
