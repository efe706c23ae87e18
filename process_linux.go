//go:build linux

package main

import (
	"os/exec"
)

var civ5ProcessNames = []string{"Civ5XP", "Civ5"}

// isProcessRunning reports whether a process with the exact name exists.
func isProcessRunning(processName string) bool {
	cmd := exec.Command("pgrep", "-x", processName)
	err := cmd.Run()
	return err == nil
}
