//go:build windows

package windows

import (
	"fmt"
	"log"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

const (
	SPI_SETDESKWALLPAPER  = 0x0014
	SPIF_UPDATEINIFILE    = 0x01
	SPIF_SENDWININICHANGE = 0x02
)

type Wallpaper struct {
	mu      sync.Mutex
	current string
}

func NewWallpaper() *Wallpaper {
	return &Wallpaper{}
}

// SetWallpaper applies path as the desktop background for the current user.
func (w *Wallpaper) SetWallpaper(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path == w.current {
		return nil
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("wallpaper path %q: %w", path, err)
	}
	r1, _, callErr := procSystemParametersInfoW.Call(
		SPI_SETDESKWALLPAPER,
		0,
		uintptr(unsafe.Pointer(p)),
		SPIF_UPDATEINIFILE|SPIF_SENDWININICHANGE,
	)
	if r1 == 0 {
		log.Printf("SetWallpaper %q failed: %v", path, callErr)
		return fmt.Errorf("SystemParametersInfoW: %w", callErr)
	}
	w.current = path
	return nil
}
