package models_test

import (
	"testing"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRecordFormatting(t *testing.T) {
	rec := &models.Record{
		FirstName: "Jane",
		LastName:  "Doe",
		Address1:  "123 Main St",
		Address2:  "Apt 4",
		City:      "Orlando",
		State:     "fl",
		ZipCode:   "32801",
		CarYear:   2014,
		CarMake:   "Ford",
		CarModel:  "Focus",
	}

	assert.Equal(t, "Jane Doe", rec.PersonName())
	assert.Equal(t, "123 Main St Apt 4 Orlando fl 32801", rec.Location())
	assert.Equal(t, "2014 Ford Focus", rec.AutoSummary())

	// Section views normalize the state code.
	assert.Equal(t, "FL", rec.Person().State)
}

func TestRecordFormattingPartialData(t *testing.T) {
	rec := &models.Record{FirstName: "Jane"}

	assert.Empty(t, rec.PersonName(), "needs both names")
	assert.Empty(t, rec.Location(), "needs a street address")
	assert.Empty(t, rec.AutoSummary(), "needs year and model")

	noApt := &models.Record{Address1: "9 Elm St", City: "Tampa", State: "FL", ZipCode: "33601"}
	assert.Equal(t, "9 Elm St Tampa FL 33601", noApt.Location())
}
