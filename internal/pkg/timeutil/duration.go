package timeutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDurationFormat is returned when a stored duration value matches
// none of the accepted shapes: ISO-8601, the structured object form, or a
// clock string ("HH:mm" / "HH:mm:ss").
var ErrInvalidDurationFormat = errors.New("invalid duration format")

// DurationParts is the structured object form of a duration, as persisted in
// older overtime rows.
type DurationParts struct {
	Hours   float64 `json:"hours,omitempty"`
	Minutes float64 `json:"minutes,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

func (p DurationParts) Duration() time.Duration {
	seconds := p.Hours*3600 + p.Minutes*60 + p.Seconds
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

var isoDurationRegex = regexp.MustCompile(
	`^P(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration accepts the three duration shapes found in stored data:
// an ISO-8601 duration string ("PT1H30M"), a DurationParts object (or the
// equivalent decoded-JSON map), or a clock string ("HH:mm" / "HH:mm:ss").
// The format sniffing happens here, once, so business logic only ever sees
// time.Duration.
func ParseDuration(value any) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return parseDurationString(v)
	case DurationParts:
		return v.Duration(), nil
	case *DurationParts:
		if v == nil {
			return 0, ErrInvalidDurationFormat
		}
		return v.Duration(), nil
	case map[string]any:
		return parseDurationMap(v)
	default:
		return 0, ErrInvalidDurationFormat
	}
}

func parseDurationString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDurationFormat
	}
	if strings.HasPrefix(s, "P") {
		return parseISODuration(s)
	}
	return parseClockDuration(s)
}

func parseISODuration(s string) (time.Duration, error) {
	m := isoDurationRegex.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "") {
		return 0, ErrInvalidDurationFormat
	}

	var seconds float64
	for i, mult := range []float64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, ErrInvalidDurationFormat
		}
		seconds += n * mult
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

// parseClockDuration reads "HH:mm" or "HH:mm:ss" as an elapsed duration.
// Hours are not capped at 24 here; stored overtime never exceeds a day but
// the parser has no reason to enforce that.
func parseClockDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidDurationFormat
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, ErrInvalidDurationFormat
		}
		if i > 0 && n > 59 {
			return 0, ErrInvalidDurationFormat
		}
		nums[i] = n
	}

	return time.Duration(nums[0])*time.Hour +
		time.Duration(nums[1])*time.Minute +
		time.Duration(nums[2])*time.Second, nil
}

func parseDurationMap(m map[string]any) (time.Duration, error) {
	if len(m) == 0 {
		return 0, ErrInvalidDurationFormat
	}
	var parts DurationParts
	for key, raw := range m {
		n, ok := toFloat(raw)
		if !ok {
			return 0, ErrInvalidDurationFormat
		}
		switch key {
		case "hours":
			parts.Hours = n
		case "minutes":
			parts.Minutes = n
		case "seconds":
			parts.Seconds = n
		default:
			return 0, ErrInvalidDurationFormat
		}
	}
	return parts.Duration(), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatDuration renders a duration as a zero-padded "HH:mm:ss" string, the
// canonical persisted form for detected overtime.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Minutes converts a duration to whole minutes, rounding to nearest.
func Minutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// parseClock reads a local time-of-day "HH:mm" or "HH:mm:ss".
func parseClock(clock string) (h, m, s int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid time of day %q", clock)
	}

	var nums [3]int
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid time of day %q", clock)
		}
		nums[i] = n
	}
	if nums[0] > 23 || nums[1] > 59 || nums[2] > 59 {
		return 0, 0, 0, fmt.Errorf("invalid time of day %q", clock)
	}
	return nums[0], nums[1], nums[2], nil
}
