//go:build !windows

package windows

func LaunchSelf(args ...string) error {
	return ErrUnsupported
}
