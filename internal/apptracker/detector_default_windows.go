//go:build windows

package apptracker

// DefaultDetector returns the platform's built-in foreground-window
// detector, used when the daemon is not configured with a script detector.
func DefaultDetector() Detector { return NativeDetector{} }
