//go:build windows

package windows

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// LaunchSelf starts another instance of the running executable with args in
// its own console window and does not wait for it.
func LaunchSelf(args ...string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("get executable path: %w", err)
	}
	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_CONSOLE}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s %v: %w", exe, args, err)
	}
	log.Printf("Launched %s %v (pid %d)", exe, args, cmd.Process.Pid)
	return cmd.Process.Release()
}
