package availability

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinStepMinutes is the smallest slot interval the generator accepts.
	MinStepMinutes = 5
	// DefaultStepMinutes is used when no interval is given.
	DefaultStepMinutes = 30
)

// GenerateTimes produces the half-open sequence of HH:MM strings
// [from, from+step, from+2*step, ...) strictly before to. An empty or
// inverted range yields an empty sequence. Steps below MinStepMinutes are
// raised to it; non-positive steps fall back to DefaultStepMinutes.
func GenerateTimes(from, to string, stepMinutes int) []string {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	if stepMinutes < MinStepMinutes {
		stepMinutes = MinStepMinutes
	}

	start, okFrom := parseMinutes(from)
	end, okTo := parseMinutes(to)
	if !okFrom || !okTo {
		return nil
	}

	var out []string
	for ; start < end; start += stepMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", start/60, start%60))
	}
	return out
}

func parseMinutes(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}
