package platform

import (
	"fmt"
	"os/exec"
)

func playSoundFile(path string) error {
	afplay, err := exec.LookPath("afplay")
	if err != nil {
		return fmt.Errorf("afplay: %w", err)
	}
	if err := exec.Command(afplay, path).Start(); err != nil {
		return fmt.Errorf("afplay: %w", err)
	}
	return nil
}
