package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	at := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Z/2026/15", Render("Z/{YYYY}/{NR}", at, 15))
	assert.Equal(t, "FV/26/03/0015", Render("FV/{YY}/{MM}/{nr}", at, 15))
	assert.Equal(t, "no placeholders", Render("no placeholders", at, 15))
}

func TestExtractSequence(t *testing.T) {
	assert.Equal(t, int64(15), ExtractSequence("Z/2026/15"))
	assert.Equal(t, int64(7), ExtractSequence("FV/2026/03/0007"))
	assert.Equal(t, int64(0), ExtractSequence("no digits"))
	assert.Equal(t, int64(42), ExtractSequence("42"))
	assert.Equal(t, int64(9), ExtractSequence("Z/2026/9  "))
}

func TestExtractSequenceIgnoresNonTrailingRuns(t *testing.T) {
	assert.Equal(t, int64(0), ExtractSequence("Z/2025/7-bis"))
	assert.Equal(t, int64(0), ExtractSequence("FV/2026/3a"))
}

func TestMaxSequence(t *testing.T) {
	numbers := []string{"Z/2026/3", "Z/2026/12", "Z/2025/9", "draft", "Z/2026/99-bis"}
	assert.Equal(t, int64(12), MaxSequence(numbers))
	assert.Equal(t, int64(0), MaxSequence(nil))
}
