package services_test

import (
	"testing"

	"github.com/craigderington/m3data-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	svc := services.NewGeocodeService()

	t.Run("valid 10-digit number", func(t *testing.T) {
		num, err := svc.ParseNumber("6502530000")
		require.NoError(t, err)
		assert.EqualValues(t, 1, num.GetCountryCode())
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, bad := range []string{"12345", "abcdefghij", "", "0000000000"} {
			_, err := svc.ParseNumber(bad)
			assert.ErrorIs(t, err, services.ErrInvalidPhoneNumber, "input %q", bad)
		}
	})
}

func TestGeocode(t *testing.T) {
	svc := services.NewGeocodeService()

	num, err := svc.ParseNumber("6502530000")
	require.NoError(t, err)

	geo := svc.Geocode(num)

	assert.Equal(t, "6502530000", geo.National)
	assert.Equal(t, "+1 650-253-0000", geo.International)
	assert.Equal(t, "+16502530000", geo.E164)
	assert.Equal(t, 1, geo.CountryCode)

	// Derived purely from the numbering plan, no store involved.
	assert.Contains(t, geo.TimeZones, "America/Los_Angeles")
	assert.NotEmpty(t, geo.Location)
}
