//go:build windows

package window

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/tinyrange/glpong/internal/gl"
	"golang.org/x/sys/windows"
)

const (
	csOwnDC = 0x0020

	// Caption, system menu and minimize box without a sizing border keep the
	// window at a fixed size.
	wsFixedWindow  = 0x00C00000 | 0x00080000 | 0x00020000
	wsClipSiblings = 0x04000000
	wsClipChildren = 0x02000000
	swShow         = 5

	wmDestroy    = 0x0002
	wmKillFocus  = 0x0008
	wmClose      = 0x0010
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	pmRemove     = 0x0001

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001

	cwUseDefault = 0x80000000
	idcArrow     = 32512
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	opengl32 = windows.NewLazySystemDLL("opengl32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procAdjustWindowRect = user32.NewProc("AdjustWindowRect")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procSetWindowText    = user32.NewProc("SetWindowTextW")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procPeekMessage      = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procLoadCursor       = user32.NewProc("LoadCursorW")

	procChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")

	procWglCreateContext = opengl32.NewProc("wglCreateContext")
	procWglMakeCurrent   = opengl32.NewProc("wglMakeCurrent")
	procWglDeleteContext = opengl32.NewProc("wglDeleteContext")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
)

var (
	// Make the class name unique per-process to avoid CS_OWNDC collisions.
	windowClassName = fmt.Sprintf("GoPongWindow_%d", os.Getpid())
	windowClass     = windows.StringToUTF16Ptr(windowClassName)

	// wndProc has no user pointer; the single window is reached through here.
	currentWin *winWindow
)

func validateProcs() error {
	procs := []*windows.LazyProc{
		procRegisterClassEx,
		procCreateWindowEx,
		procGetDC,
		procReleaseDC,
		procChoosePixelFormat,
		procSetPixelFormat,
		procWglCreateContext,
		procWglMakeCurrent,
		procWglDeleteContext,
	}
	for _, p := range procs {
		if err := p.Find(); err != nil {
			return fmt.Errorf("missing procedure %q: %w", p.Name, err)
		}
	}
	return nil
}

func winErr(op string, err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) && errno != 0 {
		return fmt.Errorf("%s failed: %w", op, errno)
	}
	return fmt.Errorf("%s failed", op)
}

type winWindow struct {
	hwnd    windows.HWND
	hdc     windows.Handle
	ctx     windows.Handle
	running bool
	keys    keySet
}

func New(title string, width, height int) (Window, error) {
	runtime.LockOSThread()

	if err := validateProcs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	if err := registerWindowClass(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	hwnd, hdc, err := createWindow(title, width, height)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	if err := setPixelFormat(hdc); err != nil {
		procReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
		procDestroyWindow.Call(uintptr(hwnd))
		runtime.UnlockOSThread()
		return nil, err
	}

	ctx, err := createGLContext(hdc)
	if err != nil {
		procReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
		procDestroyWindow.Call(uintptr(hwnd))
		runtime.UnlockOSThread()
		return nil, err
	}

	// Show only after pixel format + context are established.
	procShowWindow.Call(uintptr(hwnd), swShow)
	procUpdateWindow.Call(uintptr(hwnd))

	win := &winWindow{hwnd: hwnd, hdc: hdc, ctx: ctx, running: true}
	currentWin = win
	return win, nil
}

func (w *winWindow) GL() (gl.OpenGL, error) {
	return gl.Load()
}

func (w *winWindow) Close() {
	if w.ctx != 0 {
		procWglMakeCurrent.Call(uintptr(w.hdc), 0)
		procWglDeleteContext.Call(uintptr(w.ctx))
		w.ctx = 0
	}
	if w.hdc != 0 && w.hwnd != 0 {
		procReleaseDC.Call(uintptr(w.hwnd), uintptr(w.hdc))
		w.hdc = 0
	}
	if w.hwnd != 0 {
		procDestroyWindow.Call(uintptr(w.hwnd))
		w.hwnd = 0
	}
	if currentWin == w {
		currentWin = nil
	}
	w.running = false
	runtime.UnlockOSThread()
}

func (w *winWindow) Poll() bool {
	if !w.running {
		return false
	}

	w.keys.beginPoll()

	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret == 0 {
			break
		}
		if m.message == wmDestroy {
			w.running = false
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	return w.running
}

func (w *winWindow) Swap() {
	if w.hdc != 0 {
		procSwapBuffers.Call(uintptr(w.hdc))
	}
}

func (w *winWindow) BackingSize() (int, int) {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.right - r.left), int(r.bottom - r.top)
}

func (w *winWindow) SetTitle(title string) {
	ptr, err := windows.UTF16PtrFromString(title)
	if err != nil || w.hwnd == 0 {
		return
	}
	procSetWindowText.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(ptr)))
}

func (w *winWindow) KeyDown(key Key) bool {
	return w.keys.down(key)
}

func registerWindowClass() error {
	cursor, _, _ := procLoadCursor.Call(0, idcArrow)
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csOwnDC,
		lpfnWndProc:   windows.NewCallback(wndProc),
		hInstance:     moduleHandle(),
		hCursor:       windows.Handle(cursor),
		lpszClassName: windowClass,
	}

	ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		return winErr("RegisterClassExW", err)
	}
	return nil
}

// createWindow sizes the outer frame so the client area is width x height.
func createWindow(title string, width, height int) (windows.HWND, windows.Handle, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, 0, err
	}

	style := uint32(wsFixedWindow | wsClipSiblings | wsClipChildren)
	frame := rect{right: int32(width), bottom: int32(height)}
	procAdjustWindowRect.Call(uintptr(unsafe.Pointer(&frame)), uintptr(style), 0)

	ret, _, err := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(windowClass)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(style),
		cwUseDefault,
		cwUseDefault,
		uintptr(frame.right-frame.left),
		uintptr(frame.bottom-frame.top),
		0,
		0,
		uintptr(moduleHandle()),
		0,
	)
	hwnd := windows.HWND(ret)
	if hwnd == 0 {
		return 0, 0, winErr("CreateWindowExW", err)
	}

	dc, _, err := procGetDC.Call(uintptr(hwnd))
	if dc == 0 {
		procDestroyWindow.Call(uintptr(hwnd))
		return 0, 0, winErr("GetDC", err)
	}
	return hwnd, windows.Handle(dc), nil
}

func setPixelFormat(hdc windows.Handle) error {
	desired := pixelFormatDescriptor{
		nSize:      uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:   1,
		dwFlags:    pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer,
		iPixelType: pfdTypeRGBA,
		cColorBits: 24,
		cDepthBits: 24,
		iLayerType: pfdMainPlane,
	}

	pf, _, err := procChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(&desired)))
	if pf == 0 {
		return winErr("ChoosePixelFormat", err)
	}

	// SetPixelFormat wants the descriptor of the chosen index, not the request.
	var chosen pixelFormatDescriptor
	if r, _, err := procDescribePixelFormat.Call(uintptr(hdc), pf, unsafe.Sizeof(chosen), uintptr(unsafe.Pointer(&chosen))); r == 0 {
		return winErr("DescribePixelFormat", err)
	}
	const requiredFlags = pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer
	if chosen.dwFlags&requiredFlags != requiredFlags || chosen.iPixelType != pfdTypeRGBA {
		return errors.New("no double-buffered RGBA OpenGL pixel format")
	}

	if ok, _, err := procSetPixelFormat.Call(uintptr(hdc), pf, uintptr(unsafe.Pointer(&chosen))); ok == 0 {
		return fmt.Errorf("pixel format %d: %w", pf, winErr("SetPixelFormat", err))
	}
	return nil
}

func createGLContext(hdc windows.Handle) (windows.Handle, error) {
	ctx, _, err := procWglCreateContext.Call(uintptr(hdc))
	if ctx == 0 {
		return 0, winErr("wglCreateContext", err)
	}
	if ret, _, err := procWglMakeCurrent.Call(uintptr(hdc), ctx); ret == 0 {
		procWglDeleteContext.Call(ctx)
		return 0, winErr("wglMakeCurrent", err)
	}
	return windows.Handle(ctx), nil
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	current := currentWin
	if current != nil && current.hwnd != windows.HWND(hwnd) {
		current = nil
	}

	switch msg {
	case wmKeyDown, wmSysKeyDown, wmKeyUp, wmSysKeyUp:
		if current != nil {
			down := msg == wmKeyDown || msg == wmSysKeyDown
			current.keys.set(keyFromVirtualKey(wParam), down)
		}
		if msg == wmKeyDown || msg == wmKeyUp {
			return 0
		}
	case wmKillFocus:
		if current != nil {
			current.keys.clear()
		}
	case wmClose:
		if current != nil {
			current.running = false
		}
		procDestroyWindow.Call(hwnd)
		return 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, msg, wParam, lParam)
	return ret
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return windows.Handle(h)
}
