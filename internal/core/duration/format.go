// Package duration renders elapsed solve times as HH:MM:SS.mmm.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const millisDigits = 3

// Format renders seconds as HH:MM:SS.mmm.
//
// Hours keep counting past 23. The millisecond field holds the first three
// decimal digits of the shortest decimal representation of seconds,
// truncated and right-padded with zeros, so 3661.4567 renders as
// 01:01:01.456 and 0.05 as 00:00:00.050. Negative, non-finite or
// out-of-range input renders as zero.
func Format(seconds float64) string {
	if seconds < 0 || seconds >= math.MaxInt64 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	whole := int64(math.Floor(seconds))
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60

	return fmt.Sprintf("%02d:%02d:%02d.%s", hours, minutes, secs, millis(seconds))
}

// FormatDuration renders a Go duration the same way as Format.
func FormatDuration(value time.Duration) string {
	return Format(value.Seconds())
}

func millis(seconds float64) string {
	repr := strconv.FormatFloat(seconds, 'f', -1, 64)
	_, fraction, found := strings.Cut(repr, ".")
	if !found {
		fraction = ""
	}
	if len(fraction) > millisDigits {
		fraction = fraction[:millisDigits]
	}
	return fraction + strings.Repeat("0", millisDigits-len(fraction))
}
