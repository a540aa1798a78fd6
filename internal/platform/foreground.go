package platform

// ForegroundProvider reports the executable behind the foreground window.
type ForegroundProvider interface {
	// ForegroundProgram returns the executable path and display name of
	// the foreground process. An empty path with a nil error means no
	// usable foreground window right now.
	ForegroundProgram() (path string, name string, err error)
}

// NewForegroundProvider returns a platform-specific foreground provider.
func NewForegroundProvider() ForegroundProvider {
	return newForegroundProvider()
}
