package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// within reports whether (x, y) lies inside the w×h box at (bx, by).
func within(x, y, bx, by, w, h int) bool {
	return x >= bx && x <= bx+w && y >= by && y <= by+h
}
