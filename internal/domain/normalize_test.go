package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testElmOak = "Elm St & Oak St"
	testOakElm = "Oak St & Elm St"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		raw      string
		expected Value
	}{
		{"yes capitalized", FieldAlcoholInvolved, "Yes", BoolValue(true)},
		{"yes lowercase", FieldAlcoholInvolved, "yes", BoolValue(true)},
		{"yes uppercase", FieldDrugInvolved, "YES", BoolValue(true)},
		{"no capitalized", FieldAnimalInvolved, "No", BoolValue(false)},
		{"no lowercase", FieldAnimalInvolved, "no", BoolValue(false)},
		{"integer", FieldDayOfWeek, "42", NumberValue(42)},
		{"decimal", FieldHourOfDay, "42.5", NumberValue(42.5)},
		{"negative", "Offset", "-3", NumberValue(-3)},
		{"explicit plus", "Offset", "+7", NumberValue(7)},
		{"leading dot", "Offset", ".5", NumberValue(0.5)},
		{"padded number", FieldHourOfDay, " 13 ", NumberValue(13)},
		{"whitespace only", FieldCrashType, "  ", StringValue("  ")},
		{"empty", FieldCrashType, "", StringValue("")},
		{"exponent is text", "Code", "1e5", StringValue("1e5")},
		{"category", FieldCrashType, "Rear End", StringValue("Rear End")},
		{"yes in any column", FieldCrashType, "yes", BoolValue(true)},
		{"number in any column", FieldCrashSeverity, "3", NumberValue(3)},
		{"location", FieldCrashLocation, testOakElm, StringValue(testElmOak)},
		{"location that reads yes", FieldCrashLocation, "yes", StringValue("yes")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeField(tt.field, tt.raw))
		})
	}
}

func TestCanonicalLocation(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t, CanonicalLocation(testElmOak), CanonicalLocation(testOakElm))
		assert.Equal(t, testElmOak, CanonicalLocation(testOakElm))
	})

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"already sorted", "A & B", "A & B"},
		{"reversed", "B & A", "A & B"},
		{"extra whitespace", "  Oak   St &   Elm  St ", testElmOak},
		{"tabs collapse", "Oak\tSt &\tElm St", testElmOak},
		{"single street", "Main St", "Main St"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalLocation(tt.raw))
		})
	}
}

func TestValueLabel(t *testing.T) {
	assert.Equal(t, "42", NumberValue(42).Label())
	assert.Equal(t, "42.5", NumberValue(42.5).Label())
	assert.Equal(t, "true", BoolValue(true).Label())
	assert.Equal(t, "Angle", StringValue("Angle").Label())
}

func TestNewRecord(t *testing.T) {
	header := []string{FieldCrashType, FieldAlcoholInvolved, FieldHourOfDay}

	t.Run("normalizes each field", func(t *testing.T) {
		rec := NewRecord(header, []string{"Angle", "Yes", "17"})

		assert.Equal(t, header, rec.Fields)
		assert.Equal(t, "Angle", rec.Label(FieldCrashType))
		assert.True(t, rec.IsTrue(FieldAlcoholInvolved))
		v, ok := rec.Get(FieldHourOfDay)
		assert.True(t, ok)
		assert.Equal(t, NumberValue(17), v)
	})

	t.Run("short row", func(t *testing.T) {
		rec := NewRecord(header, []string{"Angle"})

		assert.False(t, rec.IsTrue(FieldAlcoholInvolved))
		assert.Equal(t, StringValue(""), rec.Values[FieldHourOfDay])
	})

	t.Run("missing field", func(t *testing.T) {
		rec := NewRecord(header, []string{"Angle", "No", "1"})

		_, ok := rec.Get(FieldDrugInvolved)
		assert.False(t, ok)
		assert.False(t, rec.IsTrue(FieldDrugInvolved))
		assert.Equal(t, "", rec.Label(FieldDrugInvolved))
	})
}
