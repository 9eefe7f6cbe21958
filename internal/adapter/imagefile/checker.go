package imagefile

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
)

var (
	ErrNoPath   = errors.New("no image path")
	ErrNotFound = errors.New("image file not found")
	ErrEmpty    = errors.New("image file is empty")
)

// Checker validates wallpaper assets on the local filesystem.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// Usable reports whether path names an existing, non-empty regular file.
func (c *Checker) Usable(path string) bool {
	return c.stat(path) == nil
}

// Validate also decodes the image header. Supported: JPEG, PNG, GIF, BMP.
func (c *Checker) Validate(path string) error {
	if err := c.stat(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	if _, format, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	} else if format == "" {
		return fmt.Errorf("decode image %s: unknown format", path)
	}
	return nil
}

func (c *Checker) stat(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return nil
}
