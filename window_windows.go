package main

import (
	"errors"
	"fmt"
	"image"
	"syscall"
	"unsafe"

	"github.com/disintegration/gift"
	"github.com/lxn/win"
	"gocv.io/x/gocv"
)

func init() {
	// Without per monitor awareness the client rectangle is scaled and the
	// capture comes out blurred on hi-dpi displays.
	procSetProcessDpiAwareness.Call(uintptr(2)) // PROCESS_PER_MONITOR_DPI_AWARE
}

var procSetProcessDpiAwareness = syscall.NewLazyDLL("Shcore.dll").NewProc("SetProcessDpiAwareness")

// windowSource grabs the game area out of a window's client area, so the
// window may be partially covered or moved.
type windowSource struct {
	hwnd win.HWND

	// rect is the game area in client coordinates, origin its top-left on
	// screen.
	rect   image.Rectangle
	origin image.Point

	flip *gift.GIFT
}

func openWindow(title string, game image.Rectangle) (*windowSource, error) {
	name, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	hwnd := win.FindWindow(nil, name)
	if hwnd == 0 {
		return nil, fmt.Errorf("window %q not found, is the game running?", title)
	}

	var rc win.RECT
	if !win.GetClientRect(hwnd, &rc) {
		return nil, fmt.Errorf("could not read client area of %q", title)
	}
	client := image.Rect(0, 0, int(rc.Right), int(rc.Bottom))
	if !game.In(client) {
		return nil, fmt.Errorf("game area %v does not fit client area %v of %q", game, client, title)
	}

	p := win.POINT{X: int32(game.Min.X), Y: int32(game.Min.Y)}
	if !win.ClientToScreen(hwnd, &p) {
		return nil, errors.New("could not map window to screen")
	}

	return &windowSource{
		hwnd:   hwnd,
		rect:   game,
		origin: image.Pt(int(p.X), int(p.Y)),
		flip:   gift.New(gift.FlipVertical()),
	}, nil
}

func (w *windowSource) Origin() image.Point {
	return w.origin
}

func (w *windowSource) Capture() (gocv.Mat, error) {
	img, err := w.grab()
	if err != nil {
		return gocv.Mat{}, err
	}
	return gocv.ImageToMatRGB(img)
}

// grab copies the game area through a DIB section.
func (w *windowSource) grab() (*image.RGBA, error) {
	src := win.GetDC(w.hwnd)
	if src == 0 {
		return nil, errors.New("could not get window device context")
	}
	defer win.ReleaseDC(w.hwnd, src)

	dst := win.CreateCompatibleDC(src)
	if dst == 0 {
		return nil, errors.New("could not create drawing context")
	}
	defer win.DeleteDC(dst)

	width, height := w.rect.Dx(), w.rect.Dy()
	header := win.BITMAPINFOHEADER{
		BiWidth:       int32(width),
		BiHeight:      int32(height),
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	header.BiSize = uint32(unsafe.Sizeof(header))

	var bits unsafe.Pointer
	bmp := win.CreateDIBSection(dst, &header, win.DIB_RGB_COLORS, &bits, 0, 0)
	if bmp == 0 {
		return nil, errors.New("could not create capture bitmap")
	}
	defer win.DeleteObject(win.HGDIOBJ(bmp))

	win.SelectObject(dst, win.HGDIOBJ(bmp))
	if !win.BitBlt(dst, 0, 0, int32(width), int32(height), src, int32(w.rect.Min.X), int32(w.rect.Min.Y), win.SRCCOPY) {
		return nil, errors.New("window capture failed")
	}

	// The DIB holds BGRA rows bottom-up.
	raw := unsafe.Slice((*byte)(bits), width*height*4)
	upside := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(raw); i += 4 {
		upside.Pix[i], upside.Pix[i+1], upside.Pix[i+2], upside.Pix[i+3] = raw[i+2], raw[i+1], raw[i], 255
	}

	img := image.NewRGBA(upside.Bounds())
	w.flip.Draw(img, upside)
	return img, nil
}
