package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed timericon.png
var iconFS embed.FS

//go:embed alert.wav
var alertFS embed.FS

var resourceCache sync.Map

// Icon returns the application icon as a Fyne resource.
func Icon() (fyne.Resource, error) {
	return loadResource(iconFS, "timericon.png")
}

// MustIcon returns the application icon or panics on error.
func MustIcon() fyne.Resource {
	resource, err := Icon()
	if err != nil {
		panic(err)
	}
	return resource
}

// AlertWav returns the raw bytes of the embedded alert clip.
func AlertWav() ([]byte, error) {
	data, err := alertFS.ReadFile("alert.wav")
	if err != nil {
		return nil, fmt.Errorf("load alert clip: %w", err)
	}
	return data, nil
}

func loadResource(fs embed.FS, path string) (fyne.Resource, error) {
	if cached, ok := resourceCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	resourceCache.Store(path, resource)
	return resource, nil
}
