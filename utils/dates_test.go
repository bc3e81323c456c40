package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2024, 1, 15, 17, 42, 9, 120, time.UTC)
	got := BeginningOfDay(in)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestEndOfDayStaysWithinDate(t *testing.T) {
	in := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	got := EndOfDay(in)
	assert.Equal(t, 15, got.Day())
	assert.True(t, got.After(in))
	assert.True(t, got.Before(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateParam(t *testing.T) {
	got, err := ParseDateParam("2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDateParam("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDateParam("15/01/2024")
	assert.Error(t, err)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+573001234567"))
	assert.True(t, ValidatePhone("300 123 4567"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("+0"))
}
