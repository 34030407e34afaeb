package window

// X11 keysyms (X11/keysymdef.h) for the bound keys.
const (
	xkEscape     = 0xff1b
	xkUp         = 0xff52
	xkDown       = 0xff54
	xkPlus       = 0x002b
	xkEqual      = 0x003d
	xkMinus      = 0x002d
	xkQ          = 0x0071
	xkA          = 0x0061
	xkKPAdd      = 0xffab
	xkKPSubtract = 0xffad
	xkKP2        = 0xffb2
	xkKP4        = 0xffb4
	xkKP6        = 0xffb6
	xkKP8        = 0xffb8
	xkKPDown     = 0xff99
	xkKPLeft     = 0xff96
	xkKPRight    = 0xff98
	xkKPUp       = 0xff97
)

// keyFromKeysym maps an unshifted X11 keysym to a Key. Keypad digits arrive
// as KP_Left and friends when Num Lock is off.
func keyFromKeysym(sym uint64) Key {
	switch sym {
	case xkEscape:
		return KeyEscape
	case xkUp:
		return KeyUp
	case xkDown:
		return KeyDown
	case xkQ:
		return KeyQ
	case xkA:
		return KeyA
	case xkPlus, xkEqual, xkKPAdd:
		return KeyPlus
	case xkMinus, xkKPSubtract:
		return KeyMinus
	case xkKP2, xkKPDown:
		return KeyPad2
	case xkKP4, xkKPLeft:
		return KeyPad4
	case xkKP6, xkKPRight:
		return KeyPad6
	case xkKP8, xkKPUp:
		return KeyPad8
	}
	return KeyUnknown
}

// Win32 virtual-key codes.
const (
	vkEscape   = 0x1B
	vkUp       = 0x26
	vkDown     = 0x28
	vkA        = 0x41
	vkQ        = 0x51
	vkNumpad2  = 0x62
	vkNumpad4  = 0x64
	vkNumpad6  = 0x66
	vkNumpad8  = 0x68
	vkAdd      = 0x6B
	vkSubtract = 0x6D
	vkOEMPlus  = 0xBB
	vkOEMMinus = 0xBD
)

func keyFromVirtualKey(vk uintptr) Key {
	switch vk {
	case vkEscape:
		return KeyEscape
	case vkUp:
		return KeyUp
	case vkDown:
		return KeyDown
	case vkQ:
		return KeyQ
	case vkA:
		return KeyA
	case vkAdd, vkOEMPlus:
		return KeyPlus
	case vkSubtract, vkOEMMinus:
		return KeyMinus
	case vkNumpad2:
		return KeyPad2
	case vkNumpad4:
		return KeyPad4
	case vkNumpad6:
		return KeyPad6
	case vkNumpad8:
		return KeyPad8
	}
	return KeyUnknown
}

// macOS virtual key codes (HIToolbox Events.h). These are layout independent
// positions, so Q and A follow the ANSI keyboard.
const (
	kVKEscape      = 53
	kVKUpArrow     = 126
	kVKDownArrow   = 125
	kVKQ           = 12
	kVKA           = 0
	kVKEqual       = 24
	kVKMinus       = 27
	kVKKeypadPlus  = 69
	kVKKeypadMinus = 78
	kVKKeypad2     = 84
	kVKKeypad4     = 86
	kVKKeypad6     = 88
	kVKKeypad8     = 91
)

func keyFromKeyCode(code uint16) Key {
	switch code {
	case kVKEscape:
		return KeyEscape
	case kVKUpArrow:
		return KeyUp
	case kVKDownArrow:
		return KeyDown
	case kVKQ:
		return KeyQ
	case kVKA:
		return KeyA
	case kVKEqual, kVKKeypadPlus:
		return KeyPlus
	case kVKMinus, kVKKeypadMinus:
		return KeyMinus
	case kVKKeypad2:
		return KeyPad2
	case kVKKeypad4:
		return KeyPad4
	case kVKKeypad6:
		return KeyPad6
	case kVKKeypad8:
		return KeyPad8
	}
	return KeyUnknown
}
