package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sounder plays the embedded alert clip through the OS sound facility.
// Playback is fire-and-forget; failures are the caller's to log.
type Sounder struct {
	wavPath string
}

// NewSounder materializes the embedded wav under the user cache dir so
// external players can reach it by path.
func NewSounder(appName string, wavData []byte) (*Sounder, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user cache dir: %w", err)
	}
	dir := filepath.Join(cacheDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	wavPath := filepath.Join(dir, "alert.wav")
	if err := os.WriteFile(wavPath, wavData, 0o644); err != nil {
		return nil, fmt.Errorf("write alert clip: %w", err)
	}
	return &Sounder{wavPath: wavPath}, nil
}

// PlayAlert plays the alert clip asynchronously.
func (sounder *Sounder) PlayAlert() error {
	return playSoundFile(sounder.wavPath)
}
