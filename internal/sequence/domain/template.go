package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Render substitutes the numbering template placeholders. {NR} is the bare
// sequence number, {nr} zero-pads to four digits.
func Render(template string, at time.Time, n int64) string {
	replacer := strings.NewReplacer(
		"{YYYY}", fmt.Sprintf("%04d", at.Year()),
		"{YY}", fmt.Sprintf("%02d", at.Year()%100),
		"{MM}", fmt.Sprintf("%02d", int(at.Month())),
		"{NR}", strconv.FormatInt(n, 10),
		"{nr}", fmt.Sprintf("%04d", n),
	)
	return replacer.Replace(template)
}

var trailingDigits = regexp.MustCompile(`(\d+)\s*$`)

// ExtractSequence pulls the sequence part out of a formatted number: the
// digit run at the very end. Numbers with a non-numeric suffix, such as
// "Z/2025/7-bis", carry no sequence and return 0.
func ExtractSequence(number string) int64 {
	m := trailingDigits.FindStringSubmatch(number)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// MaxSequence scans formatted numbers for the highest allocated sequence.
func MaxSequence(numbers []string) int64 {
	var max int64
	for _, number := range numbers {
		if n := ExtractSequence(number); n > max {
			max = n
		}
	}
	return max
}
