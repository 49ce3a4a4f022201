package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationParts(t *testing.T) {
	out := ExitOutcome{DurationSeconds: 65*60 + 5} // 1 hr 5 min 5 sec
	h, m, s := out.DurationParts()
	assert.Equal(t, int64(1), h)
	assert.Equal(t, int64(5), m)
	assert.Equal(t, int64(5), s)

	h, m, s = ExitOutcome{}.DurationParts()
	assert.Zero(t, h)
	assert.Zero(t, m)
	assert.Zero(t, s)
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, "1 hr 5 min 5 sec", ExitOutcome{DurationSeconds: 65*60 + 5}.DurationString())
	assert.Equal(t, "0 hr 0 min 0 sec", ExitOutcome{}.DurationString())
}
