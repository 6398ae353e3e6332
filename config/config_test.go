package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsHigh(t *testing.T) {
	c := DefaultConfig()
	c.Practice.ArpeggioOctaves = 9
	c.MIDI.Channel = 99
	c.MIDI.HoldMillis = 60000

	c.Validate()

	assert.Equal(t, 3, c.Practice.ArpeggioOctaves)
	assert.Equal(t, 15, c.MIDI.Channel)
	assert.Equal(t, 5000, c.MIDI.HoldMillis)
}

func TestValidateClampsLow(t *testing.T) {
	c := DefaultConfig()
	c.Practice.ArpeggioOctaves = -2
	c.MIDI.Channel = -1
	c.MIDI.HoldMillis = 7

	c.Validate()

	assert.Equal(t, 1, c.Practice.ArpeggioOctaves)
	assert.Equal(t, 0, c.MIDI.Channel)
	assert.Equal(t, 50, c.MIDI.HoldMillis)
}

func TestValidateFillsZeroValues(t *testing.T) {
	c := &Config{}
	c.Validate()

	assert.Equal(t, 1, c.Practice.ArpeggioOctaves)
	assert.Equal(t, 500, c.MIDI.HoldMillis)
	assert.Equal(t, 0, c.MIDI.Channel)
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	before := *c
	c.Validate()
	assert.Equal(t, before, *c, "defaults should survive validation untouched")
}
