package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat_WholeNumber(t *testing.T) {
	assert.Equal(t, Amount(1000), FromFloat(10))
}

func TestFromFloat_TwoDecimals(t *testing.T) {
	assert.Equal(t, Amount(1050), FromFloat(10.50))
}

func TestFromFloat_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, Amount(201), FromFloat(2.005))
}

func TestFromFloat_RoundsDown(t *testing.T) {
	assert.Equal(t, Amount(200), FromFloat(2.004))
}

func TestFromFloat_TruncatesExtraPrecision(t *testing.T) {
	assert.Equal(t, Amount(12), FromFloat(0.1199999))
}

func TestFromFloat_Zero(t *testing.T) {
	assert.Equal(t, Amount(0), FromFloat(0))
}

func TestFloat64_RoundTrip(t *testing.T) {
	assert.Equal(t, 10.5, FromFloat(10.5).Float64())
}

func TestString_PadsFraction(t *testing.T) {
	assert.Equal(t, "10.50", FromFloat(10.5).String())
}

func TestString_Zero(t *testing.T) {
	assert.Equal(t, "0.00", Amount(0).String())
}

func TestString_SubUnit(t *testing.T) {
	assert.Equal(t, "0.05", Amount(5).String())
}
