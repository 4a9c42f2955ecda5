package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DefaultWindow(t *testing.T) {
	catalog := DefaultWindow.Generate()

	require.Len(t, catalog, 24)
	assert.Equal(t, "08:00 - 08:30", catalog[0].Label)
	assert.Equal(t, "19:30 - 20:00", catalog[23].Label)
}

func TestGenerate_NeverExceedsClosing(t *testing.T) {
	windows := []Window{
		DefaultWindow,
		{Open: HourMinute{Hour: 9}, Close: HourMinute{Hour: 17}, SlotMinutes: 30},
		{Open: HourMinute{Hour: 8, Minute: 15}, Close: HourMinute{Hour: 10}, SlotMinutes: 45},
		{Open: HourMinute{Hour: 10}, Close: HourMinute{Hour: 10, Minute: 29}, SlotMinutes: 30},
		{Open: HourMinute{Hour: 0}, Close: HourMinute{Hour: 23, Minute: 59}, SlotMinutes: 30},
	}

	for _, w := range windows {
		for _, slot := range w.Generate() {
			end := slot.EndHour*60 + slot.EndMinute
			assert.LessOrEqual(t, end, w.Close.Minutes(), "slot %s exceeds closing %02d:%02d", slot.Label, w.Close.Hour, w.Close.Minute)
			assert.Equal(t, w.SlotMinutes, end-slot.StartMinutes())
		}
	}
}

func TestGenerate_OrderedAndContiguous(t *testing.T) {
	catalog := DefaultWindow.Generate()

	for i := 1; i < len(catalog); i++ {
		assert.Equal(t, catalog[i-1].StartMinutes()+DefaultWindow.SlotMinutes, catalog[i].StartMinutes())
	}
}

func TestGenerate_TooNarrowWindow(t *testing.T) {
	w := Window{Open: HourMinute{Hour: 10}, Close: HourMinute{Hour: 10, Minute: 20}, SlotMinutes: 30}
	assert.Empty(t, w.Generate())
}

func TestFind(t *testing.T) {
	catalog := DefaultWindow.Generate()

	slot, ok := Find(catalog, "12:30 - 13:00")
	require.True(t, ok)
	assert.Equal(t, 12, slot.StartHour)
	assert.Equal(t, 30, slot.StartMinute)

	_, ok = Find(catalog, "20:00 - 20:30")
	assert.False(t, ok)
}

func TestParseHourMinute(t *testing.T) {
	hm, err := ParseHourMinute("08:00")
	require.NoError(t, err)
	assert.Equal(t, HourMinute{Hour: 8}, hm)

	hm, err = ParseHourMinute("20:15")
	require.NoError(t, err)
	assert.Equal(t, HourMinute{Hour: 20, Minute: 15}, hm)

	_, err = ParseHourMinute("24:00")
	assert.Error(t, err)

	_, err = ParseHourMinute("0800")
	assert.Error(t, err)
}
