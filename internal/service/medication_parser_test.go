package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMedicationsDashForm(t *testing.T) {
	meds := ParseMedications("Paracetamol - 500mg - twice daily after meals")

	assert.Len(t, meds, 1)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Equal(t, "500mg", meds[0].Dosage)
	assert.Equal(t, "twice daily after meals", meds[0].Instructions)
}

func TestParseMedicationsParenthesesForm(t *testing.T) {
	meds := ParseMedications("Amoxicillin (250mg) three times daily")

	assert.Len(t, meds, 1)
	assert.Equal(t, "Amoxicillin", meds[0].Name)
	assert.Equal(t, "250mg", meds[0].Dosage)
	assert.Equal(t, "three times daily", meds[0].Instructions)
}

func TestParseMedicationsCommaForm(t *testing.T) {
	meds := ParseMedications("Ibuprofen, 400mg, with food")

	assert.Len(t, meds, 1)
	assert.Equal(t, "Ibuprofen", meds[0].Name)
	assert.Equal(t, "400mg", meds[0].Dosage)
	assert.Equal(t, "with food", meds[0].Instructions)
}

func TestParseMedicationsNameOnlyUsesDefaults(t *testing.T) {
	meds := ParseMedications("Cetirizine")

	assert.Len(t, meds, 1)
	assert.Equal(t, "Cetirizine", meds[0].Name)
	assert.Equal(t, DefaultDosage, meds[0].Dosage)
	assert.Equal(t, DefaultInstructions, meds[0].Instructions)
}

func TestParseMedicationsMultipleLines(t *testing.T) {
	text := "Paracetamol - 500mg - twice daily\n\nAmoxicillin (250mg) three times daily\nCetirizine"

	meds := ParseMedications(text)

	assert.Len(t, meds, 3)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Equal(t, "Amoxicillin", meds[1].Name)
	assert.Equal(t, "Cetirizine", meds[2].Name)
}

func TestParseMedicationsPartialDashLine(t *testing.T) {
	meds := ParseMedications("Paracetamol - 500mg")

	assert.Len(t, meds, 1)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Equal(t, "500mg", meds[0].Dosage)
	assert.Equal(t, DefaultInstructions, meds[0].Instructions)
}

func TestParseMedicationsEmptyText(t *testing.T) {
	assert.Empty(t, ParseMedications(""))
	assert.Empty(t, ParseMedications("\n   \n"))
}
