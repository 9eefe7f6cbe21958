//go:build !windows

package windows

import "errors"

var ErrUnsupported = errors.New("wallpaper control only supported on Windows")

type Wallpaper struct{}

func NewWallpaper() *Wallpaper {
	return &Wallpaper{}
}

func (w *Wallpaper) SetWallpaper(path string) error {
	return ErrUnsupported
}
