//go:build darwin

// Cocoa + NSOpenGL bootstrap through purego, without cgo. Go keeps control of
// the run loop so the game drives rendering itself.
package window

import (
	"errors"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
	"github.com/tinyrange/glpong/internal/gl"
)

// NS geometry mirrors (keep alignment explicit).
type NSPoint struct {
	X float64
	Y float64
}

type NSSize struct {
	W float64
	H float64
}

type NSRect struct {
	Origin NSPoint
	Size   NSSize
}

// Cocoa constants (subset).
const (
	nsApplicationActivationPolicyRegular = 0

	nsWindowStyleTitled      = 1 << 0
	nsWindowStyleClosable    = 1 << 1
	nsWindowStyleMiniaturize = 1 << 2

	nsBackingStoreBuffered = 2

	nsEventMaskAny = ^uint(0)

	nsEventTypeKeyDown = 10
	nsEventTypeKeyUp   = 11

	// NSOpenGL pixel format attributes.
	nsOpenGLPFAAccelerated       = 73
	nsOpenGLPFADoubleBuffer      = 5
	nsOpenGLPFAColorSize         = 8
	nsOpenGLPFADepthSize         = 12
	nsOpenGLPFAOpenGLProfile     = 99
	nsOpenGLProfileVersionLegacy = 0x1000

	nsOpenGLCPSwapInterval = 222
)

// Cocoa exposes objects as pointers (Objective-C id).
type Cocoa struct {
	app     objc.ID
	window  objc.ID
	view    objc.ID
	ctx     objc.ID
	pool    objc.ID
	running bool
	keys    keySet
}

var (
	initOnce sync.Once
	initErr  error

	// CoreFoundation.
	cfRunLoopRunInMode func(uintptr, float64, bool) int32
	cfDefaultMode      uintptr

	// Cached selectors.
	selAlloc                 objc.SEL
	selInit                  objc.SEL
	selRelease               objc.SEL
	selSharedApplication     objc.SEL
	selNextEventMatchingMask objc.SEL
	selSetActivationPolicy   objc.SEL
	selFinishLaunching       objc.SEL
	selStringWithUTF8String  objc.SEL
	selInitWithContentRect   objc.SEL
	selMakeKeyAndOrderFront  objc.SEL
	selSetTitle              objc.SEL
	selSetReleasedWhenClosed objc.SEL
	selCenter                objc.SEL
	selContentView           objc.SEL
	selBounds                objc.SEL
	selConvertRectToBacking  objc.SEL
	selIsVisible             objc.SEL
	selIsKeyWindow           objc.SEL
	selSendEvent             objc.SEL
	selType                  objc.SEL
	selKeyCode               objc.SEL
	selFlushBuffer           objc.SEL
	selSetView               objc.SEL
	selMakeCurrentContext    objc.SEL
	selClearCurrentContext   objc.SEL
	selInitWithAttributes    objc.SEL
	selInitWithFormat        objc.SEL
	selSetValuesForParameter objc.SEL
)

// New boots Cocoa and a legacy-profile OpenGL context.
func New(title string, width, height int) (Window, error) {
	runtime.LockOSThread()
	if err := ensureRuntime(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	c := &Cocoa{running: true}
	if err := c.bootstrapApp(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	if err := c.makeWindow(title, width, height); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.makeGLContext(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cocoa) GL() (gl.OpenGL, error) {
	return gl.Load()
}

// Poll pumps Cocoa events once. Returns false when the window is no longer visible.
func (c *Cocoa) Poll() bool {
	if !c.running {
		return false
	}

	c.keys.beginPoll()

	// Drain one slice of the run loop without blocking and pump pending NSEvents.
	cfRunLoopRunInMode(cfDefaultMode, 0, true)
	for {
		ev := objc.Send[objc.ID](c.app, selNextEventMatchingMask, nsEventMaskAny, objc.ID(0), objc.ID(cfDefaultMode), true)
		if ev == 0 {
			break
		}
		// Key events are consumed here; forwarding them to a view that
		// does not handle them makes AppKit beep.
		switch objc.Send[uint](ev, selType) {
		case nsEventTypeKeyDown:
			c.keys.set(keyFromKeyCode(objc.Send[uint16](ev, selKeyCode)), true)
			continue
		case nsEventTypeKeyUp:
			c.keys.set(keyFromKeyCode(objc.Send[uint16](ev, selKeyCode)), false)
			continue
		}
		c.app.Send(selSendEvent, ev)
	}

	if !objc.Send[bool](c.window, selIsKeyWindow) {
		c.keys.clear()
	}
	if !objc.Send[bool](c.window, selIsVisible) {
		c.running = false
	}
	return c.running
}

// Swap presents the back buffer.
func (c *Cocoa) Swap() {
	if c.ctx != 0 {
		c.ctx.Send(selFlushBuffer)
	}
}

// BackingSize returns the current pixel dimensions, accounting for Retina scale.
func (c *Cocoa) BackingSize() (int, int) {
	if c.view == 0 {
		return 0, 0
	}
	bounds := objc.Send[NSRect](c.view, selBounds)
	backing := objc.Send[NSRect](c.view, selConvertRectToBacking, bounds)
	return int(backing.Size.W), int(backing.Size.H)
}

func (c *Cocoa) SetTitle(title string) {
	if c.window != 0 {
		c.window.Send(selSetTitle, nsString(title))
	}
}

func (c *Cocoa) KeyDown(key Key) bool {
	return c.keys.down(key)
}

// Close tears down the GL context and window.
func (c *Cocoa) Close() {
	if c.ctx != 0 {
		objc.ID(objc.GetClass("NSOpenGLContext")).Send(selClearCurrentContext)
		c.ctx.Send(selRelease)
		c.ctx = 0
	}
	if c.window != 0 {
		c.window.Send(selRelease)
		c.window = 0
	}
	if c.pool != 0 {
		c.pool.Send(selRelease)
		c.pool = 0
	}
	c.running = false
	runtime.UnlockOSThread()
}

func (c *Cocoa) bootstrapApp() error {
	app := objc.ID(objc.GetClass("NSApplication")).Send(selSharedApplication)
	if app == 0 {
		return errors.New("nsapplication unavailable")
	}
	app.Send(selSetActivationPolicy, nsApplicationActivationPolicyRegular)
	app.Send(selFinishLaunching)

	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc)
	pool = pool.Send(selInit)

	c.app = app
	c.pool = pool
	return nil
}

// makeWindow creates a non-resizable window whose content area is width x height points.
func (c *Cocoa) makeWindow(title string, width, height int) error {
	frame := NSRect{
		Origin: NSPoint{X: 100, Y: 100},
		Size:   NSSize{W: float64(width), H: float64(height)},
	}

	style := uint(nsWindowStyleTitled | nsWindowStyleClosable | nsWindowStyleMiniaturize)
	backing := uint(nsBackingStoreBuffered)

	win := objc.ID(objc.GetClass("NSWindow")).Send(selAlloc)
	win = win.Send(selInitWithContentRect, frame, style, backing, false)
	if win == 0 {
		return errors.New("failed to create nswindow")
	}

	win.Send(selCenter)
	win.Send(selSetReleasedWhenClosed, 0)
	win.Send(selSetTitle, nsString(title))
	win.Send(selMakeKeyAndOrderFront, objc.ID(0))

	c.window = win
	c.view = win.Send(selContentView)
	if c.view == 0 {
		return errors.New("window missing content view")
	}
	return nil
}

// makeGLContext requests the legacy profile: it is the only macOS profile
// that accepts GLSL 1.20 shaders without a vertex array object bound.
func (c *Cocoa) makeGLContext() error {
	attrs := []uint32{
		nsOpenGLPFAAccelerated,
		nsOpenGLPFADoubleBuffer,
		nsOpenGLPFAColorSize, 24,
		nsOpenGLPFADepthSize, 24,
		nsOpenGLPFAOpenGLProfile, nsOpenGLProfileVersionLegacy,
		0,
	}

	pf := objc.ID(objc.GetClass("NSOpenGLPixelFormat")).Send(selAlloc)
	pf = pf.Send(selInitWithAttributes, unsafe.Pointer(&attrs[0]))
	if pf == 0 {
		return errors.New("failed to create pixel format")
	}
	defer pf.Send(selRelease)

	ctx := objc.ID(objc.GetClass("NSOpenGLContext")).Send(selAlloc)
	ctx = ctx.Send(selInitWithFormat, pf, objc.ID(0))
	if ctx == 0 {
		return errors.New("failed to create gl context")
	}

	ctx.Send(selSetView, c.view)
	ctx.Send(selMakeCurrentContext)

	// Enable vsync.
	swap := int32(1)
	ctx.Send(selSetValuesForParameter, unsafe.Pointer(&swap), nsOpenGLCPSwapInterval)

	c.ctx = ctx
	return nil
}

func ensureRuntime() error {
	initOnce.Do(func() {
		if err := loadObjc(); err != nil {
			initErr = err
			return
		}
		loadSelectors()
	})
	return initErr
}

func loadObjc() error {
	// Load libobjc and AppKit so the symbols are available.
	if _, err := purego.Dlopen("/usr/lib/libobjc.A.dylib", purego.RTLD_GLOBAL); err != nil {
		return err
	}
	if _, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit", purego.RTLD_GLOBAL); err != nil {
		return err
	}
	cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}

	purego.RegisterLibFunc(&cfRunLoopRunInMode, cf, "CFRunLoopRunInMode")
	ptr, err := purego.Dlsym(cf, "kCFRunLoopDefaultMode")
	if err != nil {
		return err
	}
	// Dlsym returns the address of the CFStringRef variable; read its value.
	cfDefaultMode = *(*uintptr)(unsafe.Pointer(ptr))

	return nil
}

func loadSelectors() {
	selAlloc = objc.RegisterName("alloc")
	selInit = objc.RegisterName("init")
	selRelease = objc.RegisterName("release")
	selSharedApplication = objc.RegisterName("sharedApplication")
	selNextEventMatchingMask = objc.RegisterName("nextEventMatchingMask:untilDate:inMode:dequeue:")
	selSetActivationPolicy = objc.RegisterName("setActivationPolicy:")
	selFinishLaunching = objc.RegisterName("finishLaunching")
	selStringWithUTF8String = objc.RegisterName("stringWithUTF8String:")
	selInitWithContentRect = objc.RegisterName("initWithContentRect:styleMask:backing:defer:")
	selMakeKeyAndOrderFront = objc.RegisterName("makeKeyAndOrderFront:")
	selSetTitle = objc.RegisterName("setTitle:")
	selSetReleasedWhenClosed = objc.RegisterName("setReleasedWhenClosed:")
	selCenter = objc.RegisterName("center")
	selContentView = objc.RegisterName("contentView")
	selBounds = objc.RegisterName("bounds")
	selConvertRectToBacking = objc.RegisterName("convertRectToBacking:")
	selIsVisible = objc.RegisterName("isVisible")
	selIsKeyWindow = objc.RegisterName("isKeyWindow")
	selSendEvent = objc.RegisterName("sendEvent:")
	selType = objc.RegisterName("type")
	selKeyCode = objc.RegisterName("keyCode")
	selFlushBuffer = objc.RegisterName("flushBuffer")
	selSetView = objc.RegisterName("setView:")
	selMakeCurrentContext = objc.RegisterName("makeCurrentContext")
	selClearCurrentContext = objc.RegisterName("clearCurrentContext")
	selInitWithAttributes = objc.RegisterName("initWithAttributes:")
	selInitWithFormat = objc.RegisterName("initWithFormat:shareContext:")
	selSetValuesForParameter = objc.RegisterName("setValues:forParameter:")
}

func nsString(v string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, v+"\x00")
}
