package platform

import (
	"fmt"
	"os/exec"
)

var linuxPlayers = []string{"paplay", "aplay", "play"}

func playSoundFile(path string) error {
	for _, player := range linuxPlayers {
		playerPath, err := exec.LookPath(player)
		if err != nil {
			continue
		}
		if err := exec.Command(playerPath, path).Start(); err != nil {
			return fmt.Errorf("%s: %w", player, err)
		}
		return nil
	}
	return fmt.Errorf("no sound player found")
}
