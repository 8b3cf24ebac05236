package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		in := &InputUtils{In: strings.NewReader(tt.input), Out: &out}
		assert.Equal(t, tt.want, in.AskConfirmation("Drop table?", tt.force), "input %q", tt.input)
		if !tt.force {
			assert.Contains(t, out.String(), "Drop table? (y/N): ")
		}
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "1.235s", FormatDuration(1234567*time.Microsecond))
	assert.Equal(t, "1.23s", FormatDuration(1234*time.Millisecond))
}
