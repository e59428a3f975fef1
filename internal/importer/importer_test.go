package importer_test

import (
	"testing"

	"github.com/craigderington/m3data-api/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedRow builds a full 40-column row with recognizable values in the
// positions the mapper reads.
func feedRow() []string {
	row := make([]string, 40)
	row[2] = "93.184.216.34"
	row[4] = "United States"
	row[5] = "Orlando"
	row[6] = "America/New_York"
	row[7] = "28.5383"
	row[8] = "-81.3792"
	row[9] = "534"
	row[10] = "US"
	row[11] = "USA"
	row[12] = "534"
	row[13] = "321"
	row[14] = "32801"
	row[15] = "FL"
	row[16] = "Florida"
	row[17] = "Jane"
	row[18] = "Doe"
	row[19] = "jane@example.com"
	row[20] = "3212104622"
	row[21] = "3212104623"
	row[22] = "123 Main St"
	row[23] = "Apt 4"
	row[24] = "Orlando"
	row[25] = "FL"
	row[26] = "32801"
	row[27] = "700-749"
	row[28] = "2014"
	row[29] = "Ford"
	row[30] = "Focus"
	row[31] = "N"
	row[32] = "Y"
	row[33] = "Compact"
	row[34] = "2014-06-01"
	row[35] = "2018-01-15"
	row[36] = "1980"
	row[37] = "75k-100k"
	row[38] = "Owner"
	row[39] = "New"
	return row
}

func TestRecordFromRow(t *testing.T) {
	t.Run("maps positional columns", func(t *testing.T) {
		rec, err := importer.RecordFromRow(feedRow())
		require.NoError(t, err)

		assert.Equal(t, "93.184.216.34", rec.IP)
		assert.Equal(t, "Jane", rec.FirstName)
		assert.Equal(t, "Doe", rec.LastName)
		assert.Equal(t, "3212104622", rec.HomePhone)
		assert.Equal(t, "3212104623", rec.CellPhone)
		assert.Equal(t, 28.5383, rec.Latitude)
		assert.Equal(t, -81.3792, rec.Longitude)
		assert.Equal(t, 2014, rec.CarYear)
		assert.Equal(t, 1980, rec.BirthYear)
		assert.Equal(t, "USA", rec.CountryCd3)
		assert.Equal(t, "", rec.UserAgent)
	})

	t.Run("blank numeric columns become zero", func(t *testing.T) {
		row := feedRow()
		row[28] = "" // car year
		row[36] = "" // birth year

		rec, err := importer.RecordFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, 0, rec.CarYear)
		assert.Equal(t, 0, rec.BirthYear)
	})

	t.Run("unparseable numeric columns become zero", func(t *testing.T) {
		row := feedRow()
		row[7] = "north"
		row[28] = "n/a"

		rec, err := importer.RecordFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, float64(0), rec.Latitude)
		assert.Equal(t, 0, rec.CarYear)
	})

	t.Run("empty fields load as empty strings", func(t *testing.T) {
		row := make([]string, 40)
		rec, err := importer.RecordFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, "", rec.IP)
		assert.Equal(t, 0, rec.CarYear)
	})

	t.Run("short row is rejected", func(t *testing.T) {
		_, err := importer.RecordFromRow(make([]string, 39))
		assert.Error(t, err)
	})
}
