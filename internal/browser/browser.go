// Package browser launches the kiosk page in the local default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher starts external commands. Tests substitute a fake.
type Launcher interface {
	Start(name string, args ...string) error
}

type execLauncher struct{}

func (execLauncher) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

var defaultLauncher Launcher = execLauncher{}

// openCommand returns the platform opener invocation for a URL.
func openCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "linux":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	}
	return "", nil, fmt.Errorf("unsupported platform: %s", goos)
}

// Open opens the URL in the default browser of the current platform.
func Open(url string) error {
	return OpenWith(url, defaultLauncher, runtime.GOOS)
}

// OpenWith opens the URL using the given launcher and OS (for testing).
func OpenWith(url string, l Launcher, goos string) error {
	name, args, err := openCommand(goos, url)
	if err != nil {
		return err
	}
	return l.Start(name, args...)
}
