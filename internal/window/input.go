package window

// Key represents a keyboard key the game binds. Platform key codes outside
// this set map to KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyQ
	KeyA
	// KeyPlus covers '+', '=' and keypad '+'.
	KeyPlus
	// KeyMinus covers '-' and keypad '-'.
	KeyMinus
	KeyPad2
	KeyPad4
	KeyPad6
	KeyPad8

	keyCount
)

// Keys lists every bindable key.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyQ:       "q",
	KeyA:       "a",
	KeyPlus:    "plus",
	KeyMinus:   "minus",
	KeyPad2:    "keypad2",
	KeyPad4:    "keypad4",
	KeyPad6:    "keypad6",
	KeyPad8:    "keypad8",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// keySet tracks which keys are held, fed by platform key events. A key
// pressed since the last poll reads as down even if it was already released,
// so a tap shorter than one frame is still seen.
type keySet struct {
	held   [keyCount]bool
	tapped [keyCount]bool
}

func (s *keySet) set(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	s.held[k] = down
	if down {
		s.tapped[k] = true
	}
}

func (s *keySet) down(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s.held[k] || s.tapped[k]
}

// beginPoll forgets taps reported by the previous poll.
func (s *keySet) beginPoll() {
	s.tapped = [keyCount]bool{}
}

func (s *keySet) clear() {
	*s = keySet{}
}
