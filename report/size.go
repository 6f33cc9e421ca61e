package report

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders bytes with 1024 scaling and two decimals, e.g. "1.50 KB".
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}
