package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkBucketNormalization(t *testing.T) {
	// A day with one assignment arrives as a bare object, not an array.
	single := []byte(`{"id_work":1,"subject":"Matemáticas","description":"Taller"}`)
	var b WorkBucket
	require.NoError(t, json.Unmarshal(single, &b))
	require.Len(t, b, 1)
	assert.Equal(t, "1", b[0].ID.String())
	assert.Equal(t, "Matemáticas", b[0].Subject)

	many := []byte(`[{"id_work":"1"},{"id_work":"2"}]`)
	require.NoError(t, json.Unmarshal(many, &b))
	assert.Len(t, b, 2)

	require.NoError(t, json.Unmarshal([]byte(`false`), &b))
	assert.Nil(t, b)
}

func TestWorkCalendarForDate(t *testing.T) {
	raw := []byte(`{"04":{"07":{"id_work":"9","subject":"Inglés"},"08":[{"id_work":"10"},{"id_work":"11"}]}}`)
	var cal WorkCalendar
	require.NoError(t, json.Unmarshal(raw, &cal))

	items := cal.ForDate("2026-04-07")
	require.Len(t, items, 1)
	assert.Equal(t, "Inglés", items[0].Subject)

	// The unpadded date components must still land on the padded keys.
	assert.Len(t, cal.ForDate("2026-4-8"), 2)

	empty := cal.ForDate("2026-04-09")
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Empty(t, cal.ForDate("not-a-date"))

	// An unpadded map never matches; only the padded convention is indexed.
	unpadded := WorkCalendar{"4": {"7": {{ID: "9"}}}}
	assert.Empty(t, unpadded.ForDate("2026-04-07"))
}

func TestWorkItemDescriptionHTML(t *testing.T) {
	w := WorkItem{Description: "Leer capítulo 3\nTraer resumen"}
	assert.Equal(t, "<p>Leer capítulo 3<br>Traer resumen</p>", w.DescriptionHTML())
	assert.Equal(t, "<p>Sin descripción</p>", WorkItem{}.DescriptionHTML())
}

func TestSplitDate(t *testing.T) {
	month, day, err := SplitDate("2026-4-7")
	require.NoError(t, err)
	assert.Equal(t, "04", month)
	assert.Equal(t, "07", day)

	_, _, err = SplitDate("2026-13-01")
	assert.Error(t, err)
	_, _, err = SplitDate("2026-12-32")
	assert.Error(t, err)
	_, _, err = SplitDate("2026/12/01")
	assert.Error(t, err)
}

func TestCheckedDays(t *testing.T) {
	raw := []byte(`{"04":{"07":{"date_check":"2026-04-07 18:00:00"}}}`)
	var days CheckedDays
	require.NoError(t, json.Unmarshal(raw, &days))

	assert.True(t, days.IsChecked("2026-04-07"))
	assert.False(t, days.IsChecked("2026-04-08"))

	entry, ok := days.ForDate("2026-04-07")
	require.True(t, ok)
	assert.Equal(t, "2026-04-07 18:00:00", entry.DateCheck)
}

func TestCalendarDataFindDaySchool(t *testing.T) {
	// Month keys arrive both padded and bare from the PHP serializer.
	raw := []byte(`{
		"4":{"month":"4","data_days":{
			"week1":{"d1":{"day":"7","day_school":"Día 3"},"d2":{"day":8,"day_school":"Día 4"}}
		}}
	}`)
	var cal CalendarData
	require.NoError(t, json.Unmarshal(raw, &cal))

	label, ok := cal.FindDaySchool("2026-04-07")
	require.True(t, ok)
	assert.Equal(t, "Día 3", label)

	label, ok = cal.FindDaySchool("2026-04-08")
	require.True(t, ok)
	assert.Equal(t, "Día 4", label)

	_, ok = cal.FindDaySchool("2026-04-09")
	assert.False(t, ok)
	_, ok = cal.FindDaySchool("2026-05-07")
	assert.False(t, ok)
}
