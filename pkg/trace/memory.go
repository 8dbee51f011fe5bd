package trace

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/resserops/oopstrace/pkg/units"
)

// Memory is a point-in-time snapshot of process memory usage, in KiB, as
// reported by the kernel.
type Memory struct {
	RSSKiB  uint64
	HWMKiB  uint64
	SwapKiB uint64
}

// RSSGiB returns the resident set size in GiB.
func (m Memory) RSSGiB() float64 { return float64(m.RSSKiB*units.KiB) / units.GiB }

// HWMGiB returns the high-water-mark RSS in GiB.
func (m Memory) HWMGiB() float64 { return float64(m.HWMKiB*units.KiB) / units.GiB }

// SwapGiB returns swapped memory in GiB.
func (m Memory) SwapGiB() float64 { return float64(m.SwapKiB*units.KiB) / units.GiB }

const procSelfStatus = "/proc/self/status"

// sampleMemory reads VmRSS, VmHWM, and VmSwap from /proc/self/status. If the
// file cannot be read or parsed (e.g. a non-Linux platform), it returns a
// zeroed Memory rather than surfacing an error: memory sampling is a
// best-effort side observation, never a reason to fail a trace point.
func sampleMemory() Memory {
	f, err := os.Open(procSelfStatus)
	if err != nil {
		return Memory{}
	}
	defer f.Close()

	var mem Memory

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case setField(line, "VmRSS:", &mem.RSSKiB):
		case setField(line, "VmHWM:", &mem.HWMKiB):
		case setField(line, "VmSwap:", &mem.SwapKiB):
		}
	}

	return mem
}

// setField parses a "<prefix><spaces><n> kB" /proc/self/status line into
// dst, reporting whether the prefix matched.
func setField(line, prefix string, dst *uint64) bool {
	after, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return false
	}

	fields := strings.Fields(after)
	if len(fields) == 0 {
		return true
	}

	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err == nil {
		*dst = n
	}

	return true
}
