// Package units provides binary size unit multipliers (1024-based), used to
// convert the KiB-denominated memory samples the trace engine reads from
// /proc/self/status into the GiB figures a report prints.
package units

// Binary size multipliers, in bytes.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)
