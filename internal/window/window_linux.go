//go:build linux

package window

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/tinyrange/glpong/internal/gl"
)

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxDepthSize    = 12
	glxNone         = 0

	inputOutput = 1

	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	focusChangeMask     = 1 << 21

	keyPress      = 2
	keyRelease    = 3
	focusOut      = 10
	destroyNotify = 17
	clientMessage = 33

	pMinSize = 1 << 4
	pMaxSize = 1 << 5
)

type XVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xclientMessage struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

// Mirrors XSizeHints; min == max pins the window size.
type xSizeHints struct {
	Flags      int64
	X          int32
	Y          int32
	Width      int32
	Height     int32
	MinWidth   int32
	MinHeight  int32
	MaxWidth   int32
	MaxHeight  int32
	WidthInc   int32
	HeightInc  int32
	MinAspectX int32
	MinAspectY int32
	MaxAspectX int32
	MaxAspectY int32
	BaseWidth  int32
	BaseHeight int32
	WinGravity int32
	_          int32
}

var (
	x11lib uintptr
	gllib  uintptr

	xOpenDisplay      func(*byte) uintptr
	xDefaultScreen    func(uintptr) int32
	xRootWindow       func(uintptr, int32) uintptr
	xCreateColormap   func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow     func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow        func(uintptr, uintptr) int32
	xStoreName        func(uintptr, uintptr, *byte) int32
	xInternAtom       func(uintptr, *byte, int32) uintptr
	xSetWMProtocols   func(uintptr, uintptr, *uintptr, int32) int32
	xSetWMNormalHints func(uintptr, uintptr, *xSizeHints)
	xSelectInput      func(uintptr, uintptr, int64)
	xPending          func(uintptr) int32
	xNextEvent        func(uintptr, unsafe.Pointer)
	xLookupKeysym     func(unsafe.Pointer, int32) uint64
	xGetGeometry      func(uintptr, uintptr, *uintptr, *int32, *int32, *uint32, *uint32, *uint32, *uint32) int32
	xDestroyWindow    func(uintptr, uintptr) int32
	xCloseDisplay     func(uintptr) int32

	xkbSetDetectableAutoRepeat func(uintptr, int32, *int32) int32

	glxChooseVisual   func(uintptr, int32, *int32) *XVisualInfo
	glxCreateContext  func(uintptr, *XVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent    func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers    func(uintptr, uintptr)
	glxDestroyContext func(uintptr, uintptr)
)

type x11Window struct {
	display  uintptr
	window   uintptr
	ctx      uintptr
	wmDelete uintptr
	running  bool
	keys     keySet
}

func New(title string, width, height int) (Window, error) {
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		return nil, errors.New("XOpenDisplay failed")
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)

	attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
	visual := glxChooseVisual(dpy, screen, &attrs[0])
	if visual == nil {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXChooseVisual failed")
	}

	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask | focusChangeMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(width), uint32(height),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("XCreateWindow failed")
	}
	xSelectInput(dpy, win, swa.EventMask)

	hints := xSizeHints{
		Flags:     pMinSize | pMaxSize,
		MinWidth:  int32(width),
		MinHeight: int32(height),
		MaxWidth:  int32(width),
		MaxHeight: int32(height),
	}
	xSetWMNormalHints(dpy, win, &hints)

	xStoreName(dpy, win, cString(title))
	xMapWindow(dpy, win)

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)

	// Without detectable auto-repeat a held key shows up as release/press
	// pairs, which polling would see as the key flickering up.
	if xkbSetDetectableAutoRepeat != nil {
		var supported int32
		xkbSetDetectableAutoRepeat(dpy, 1, &supported)
	}

	ctx := glxCreateContext(dpy, visual, 0, 1)
	if ctx == 0 {
		xDestroyWindow(dpy, win)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXCreateContext failed")
	}
	if glxMakeCurrent(dpy, win, ctx) == 0 {
		glxDestroyContext(dpy, ctx)
		xDestroyWindow(dpy, win)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXMakeCurrent failed")
	}

	return &x11Window{
		display:  dpy,
		window:   win,
		ctx:      ctx,
		wmDelete: wmDelete,
		running:  true,
	}, nil
}

func (w *x11Window) GL() (gl.OpenGL, error) {
	return gl.Load()
}

func (w *x11Window) Close() {
	if w.ctx != 0 {
		glxMakeCurrent(w.display, 0, 0)
		glxDestroyContext(w.display, w.ctx)
		w.ctx = 0
	}
	if w.window != 0 {
		xDestroyWindow(w.display, w.window)
		w.window = 0
	}
	if w.display != 0 {
		xCloseDisplay(w.display)
		w.display = 0
	}
	w.running = false
	runtime.UnlockOSThread()
}

func (w *x11Window) Poll() bool {
	if !w.running {
		return false
	}

	w.keys.beginPoll()

	for xPending(w.display) > 0 {
		var ev [192]byte
		xNextEvent(w.display, unsafe.Pointer(&ev[0]))
		etype := *(*int32)(unsafe.Pointer(&ev[0]))
		switch etype {
		case keyPress, keyRelease:
			sym := xLookupKeysym(unsafe.Pointer(&ev[0]), 0)
			w.keys.set(keyFromKeysym(sym), etype == keyPress)
		case focusOut:
			w.keys.clear()
		case clientMessage:
			cm := (*xclientMessage)(unsafe.Pointer(&ev[0]))
			if cm.Format == 32 && cm.Data[0] == uint64(w.wmDelete) {
				w.running = false
			}
		case destroyNotify:
			w.running = false
		}
	}
	return w.running
}

func (w *x11Window) Swap() {
	if w.display != 0 && w.window != 0 {
		glxSwapBuffers(w.display, w.window)
	}
}

func (w *x11Window) BackingSize() (int, int) {
	var root uintptr
	var x, y int32
	var width, height uint32
	var border, depth uint32
	if xGetGeometry(w.display, w.window, &root, &x, &y, &width, &height, &border, &depth) == 0 {
		return 0, 0
	}
	return int(width), int(height)
}

func (w *x11Window) SetTitle(title string) {
	if w.display != 0 && w.window != 0 {
		xStoreName(w.display, w.window, cString(title))
	}
}

func (w *x11Window) KeyDown(key Key) bool {
	return w.keys.down(key)
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

func ensureLibs() error {
	var err error
	if x11lib == 0 {
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return err
		}
		registerX11()
	}
	if gllib == 0 {
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return err
		}
		registerGLX()
	}
	return nil
}

func registerX11() {
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSetWMNormalHints, x11lib, "XSetWMNormalHints")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xGetGeometry, x11lib, "XGetGeometry")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	// XKB is optional; without it held keys may flicker on auto-repeat.
	if _, err := purego.Dlsym(x11lib, "XkbSetDetectableAutoRepeat"); err == nil {
		purego.RegisterLibFunc(&xkbSetDetectableAutoRepeat, x11lib, "XkbSetDetectableAutoRepeat")
	}
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
