package window

import "testing"

func TestKeyFromKeysym(t *testing.T) {
	tests := []struct {
		sym  uint64
		want Key
	}{
		{xkEscape, KeyEscape},
		{xkUp, KeyUp},
		{xkDown, KeyDown},
		{xkQ, KeyQ},
		{xkA, KeyA},
		{xkPlus, KeyPlus},
		{xkEqual, KeyPlus},
		{xkKPAdd, KeyPlus},
		{xkMinus, KeyMinus},
		{xkKPSubtract, KeyMinus},
		{xkKP4, KeyPad4},
		{xkKPLeft, KeyPad4},
		{xkKP8, KeyPad8},
		{xkKPUp, KeyPad8},
		{xkKP6, KeyPad6},
		{xkKPRight, KeyPad6},
		{xkKP2, KeyPad2},
		{xkKPDown, KeyPad2},
		{0x0062, KeyUnknown}, // b
	}
	for _, tc := range tests {
		if got := keyFromKeysym(tc.sym); got != tc.want {
			t.Errorf("keyFromKeysym(%#x) = %v, want %v", tc.sym, got, tc.want)
		}
	}
}

func TestKeyFromVirtualKey(t *testing.T) {
	tests := []struct {
		vk   uintptr
		want Key
	}{
		{vkEscape, KeyEscape},
		{vkUp, KeyUp},
		{vkDown, KeyDown},
		{vkQ, KeyQ},
		{vkA, KeyA},
		{vkAdd, KeyPlus},
		{vkOEMPlus, KeyPlus},
		{vkSubtract, KeyMinus},
		{vkOEMMinus, KeyMinus},
		{vkNumpad2, KeyPad2},
		{vkNumpad4, KeyPad4},
		{vkNumpad6, KeyPad6},
		{vkNumpad8, KeyPad8},
		{0x20, KeyUnknown}, // space
	}
	for _, tc := range tests {
		if got := keyFromVirtualKey(tc.vk); got != tc.want {
			t.Errorf("keyFromVirtualKey(%#x) = %v, want %v", tc.vk, got, tc.want)
		}
	}
}

func TestKeyFromKeyCode(t *testing.T) {
	tests := []struct {
		code uint16
		want Key
	}{
		{kVKEscape, KeyEscape},
		{kVKUpArrow, KeyUp},
		{kVKDownArrow, KeyDown},
		{kVKQ, KeyQ},
		{kVKA, KeyA},
		{kVKEqual, KeyPlus},
		{kVKKeypadPlus, KeyPlus},
		{kVKMinus, KeyMinus},
		{kVKKeypadMinus, KeyMinus},
		{kVKKeypad2, KeyPad2},
		{kVKKeypad4, KeyPad4},
		{kVKKeypad6, KeyPad6},
		{kVKKeypad8, KeyPad8},
		{49, KeyUnknown}, // space
	}
	for _, tc := range tests {
		if got := keyFromKeyCode(tc.code); got != tc.want {
			t.Errorf("keyFromKeyCode(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestKeySet(t *testing.T) {
	var s keySet
	s.set(KeyQ, true)
	s.set(KeyUnknown, true)
	s.set(keyCount, true)

	if !s.down(KeyQ) || s.down(KeyA) {
		t.Fatalf("down(Q) = %v down(A) = %v", s.down(KeyQ), s.down(KeyA))
	}
	if s.down(KeyUnknown) || s.down(Key(-1)) || s.down(keyCount) {
		t.Fatalf("out of range keys reported down")
	}

	s.beginPoll()
	s.set(KeyQ, false)
	if s.down(KeyQ) {
		t.Fatalf("released key still down")
	}

	s.set(KeyUp, true)
	s.clear()
	for _, k := range Keys() {
		if s.down(k) {
			t.Fatalf("%v down after clear", k)
		}
	}
}

// A key pressed and released between two polls reads as down for exactly
// one poll.
func TestKeySetTap(t *testing.T) {
	var s keySet

	s.beginPoll()
	s.set(KeyPlus, true)
	s.set(KeyPlus, false)
	if !s.down(KeyPlus) {
		t.Fatalf("tap within one poll not reported")
	}

	s.beginPoll()
	if s.down(KeyPlus) {
		t.Fatalf("tap still reported on the next poll")
	}

	s.beginPoll()
	s.set(KeyUp, true)
	s.beginPoll()
	if !s.down(KeyUp) {
		t.Fatalf("held key lost across polls")
	}
	s.set(KeyUp, false)
	s.beginPoll()
	if s.down(KeyUp) {
		t.Fatalf("released key still down")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != int(keyCount)-1 {
		t.Fatalf("len(Keys()) = %d, want %d", len(keys), keyCount-1)
	}
	seen := map[string]bool{}
	for _, k := range keys {
		name := k.String()
		if name == "unknown" || seen[name] {
			t.Fatalf("key %d has name %q", k, name)
		}
		seen[name] = true
	}
	if Key(99).String() != "unknown" {
		t.Fatalf("Key(99).String() = %q", Key(99).String())
	}
}
