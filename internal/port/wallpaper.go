package port

// WallpaperSetter paints the desktop background
type WallpaperSetter interface {
	// SetWallpaper applies the image at path. Applying the current image again is a no-op.
	SetWallpaper(path string) error
}

// AssetChecker decides whether an image path can be used as a wallpaper
type AssetChecker interface {
	// Usable reports whether path names an existing, non-empty file
	Usable(path string) bool

	// Validate checks Usable and that the file decodes as a supported image
	Validate(path string) error
}
