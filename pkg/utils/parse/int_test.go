package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntOrZero(t *testing.T) {
	assert.Equal(t, 42, IntOrZero("42"))
	assert.Equal(t, 7, IntOrZero(" 7 "))
	assert.Equal(t, 0, IntOrZero("veel"))
}

func TestFloatOrZero(t *testing.T) {
	assert.Equal(t, 4.5, FloatOrZero("4,5"))
	assert.Equal(t, 3.9, FloatOrZero("3.9"))
	assert.Equal(t, 0.0, FloatOrZero(""))
}
