package main

import "fmt"

// formatDelay renders a delay in minutes for table output.
func formatDelay(min int) string {
	if min == 0 {
		return "-"
	}
	return fmt.Sprintf("+%dm", min)
}
