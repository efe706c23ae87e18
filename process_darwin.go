//go:build darwin

package main

import (
	"os/exec"
)

var civ5ProcessNames = []string{"Civilization V"}

// isProcessRunning reports whether a process with the exact name exists.
func isProcessRunning(processName string) bool {
	cmd := exec.Command("pgrep", "-x", processName)
	err := cmd.Run()
	return err == nil
}
