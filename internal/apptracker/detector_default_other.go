//go:build !windows

package apptracker

// DefaultDetector returns NoopDetector on platforms with no built-in
// foreground-window backend; a script detector is the supported way to plug
// in window enumeration outside Windows.
func DefaultDetector() Detector { return NoopDetector{} }
