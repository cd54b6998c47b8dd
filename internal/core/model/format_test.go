package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{1500 * time.Second, "25:00"},
		{59 * time.Second, "00:59"},
		{0, "00:00"},
		{900 * time.Second, "15:00"},
		{61 * time.Second, "01:01"},
		{-5 * time.Second, "00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatClock(tc.remaining), "FormatClock(%v)", tc.remaining)
	}
}
