package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

// WorkItem is one assignment entry of the virtual agenda.
type WorkItem struct {
	ID           FlexString `json:"id_work"`
	Subject      string     `json:"subject"`
	Description  string     `json:"description"`
	Teacher      string     `json:"name_teacher"`
	DateCreation string     `json:"date_creation"`
}

// DescriptionHTML returns the assignment body ready for a web view. The
// backend mixes plaintext and HTML fragments in the same field.
func (w WorkItem) DescriptionHTML() string {
	return textutil.TextToHTML(w.Description)
}

// ReminderItem is one reminder entry of the virtual agenda.
type ReminderItem struct {
	ID           FlexString `json:"id_reminder"`
	Description  string     `json:"description"`
	DateCreation string     `json:"date_creation"`
}

// WorkBucket is the value stored at one calendar day. The backend emits a
// bare object when a day has a single assignment and an array otherwise;
// decoding normalizes both to a slice.
type WorkBucket []WorkItem

// UnmarshalJSON implements json.Unmarshaler.
func (b *WorkBucket) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if isAbsent(raw) {
		*b = nil
		return nil
	}
	if raw[0] == '[' {
		var items []WorkItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*b = items
		return nil
	}
	var item WorkItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return err
	}
	*b = WorkBucket{item}
	return nil
}

// ReminderBucket mirrors WorkBucket for reminders.
type ReminderBucket []ReminderItem

// UnmarshalJSON implements json.Unmarshaler.
func (b *ReminderBucket) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if isAbsent(raw) {
		*b = nil
		return nil
	}
	if raw[0] == '[' {
		var items []ReminderItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*b = items
		return nil
	}
	var item ReminderItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return err
	}
	*b = ReminderBucket{item}
	return nil
}

func isAbsent(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false"))
}

// WorkCalendar is the month -> day -> assignments lookup structure. Both
// levels are keyed by two-digit zero-padded strings ("01".."12", "01".."31").
type WorkCalendar map[string]map[string]WorkBucket

// ForDate returns the assignments at a YYYY-MM-DD date. Absent keys yield an
// empty, non-nil slice.
func (c WorkCalendar) ForDate(date string) []WorkItem {
	month, day, err := SplitDate(date)
	if err != nil || c == nil {
		return []WorkItem{}
	}
	bucket := c[month][day]
	out := make([]WorkItem, 0, len(bucket))
	return append(out, bucket...)
}

// ReminderCalendar is the month -> day -> reminders lookup structure.
type ReminderCalendar map[string]map[string]ReminderBucket

// ForDate returns the reminders at a YYYY-MM-DD date. Absent keys yield an
// empty, non-nil slice.
func (c ReminderCalendar) ForDate(date string) []ReminderItem {
	month, day, err := SplitDate(date)
	if err != nil || c == nil {
		return []ReminderItem{}
	}
	bucket := c[month][day]
	out := make([]ReminderItem, 0, len(bucket))
	return append(out, bucket...)
}

// CheckedDay records that a calendar day was marked reviewed and when.
type CheckedDay struct {
	DateCheck string `json:"date_check"`
}

// CheckedDays is the sparse month -> day map of reviewed calendar days.
// Key presence means checked.
type CheckedDays map[string]map[string]CheckedDay

// IsChecked reports whether the date has been marked reviewed.
func (c CheckedDays) IsChecked(date string) bool {
	_, ok := c.ForDate(date)
	return ok
}

// ForDate returns the check record for a date when present.
func (c CheckedDays) ForDate(date string) (CheckedDay, bool) {
	month, day, err := SplitDate(date)
	if err != nil || c == nil {
		return CheckedDay{}, false
	}
	entry, ok := c[month][day]
	return entry, ok
}

// CalendarDay is one school-calendar cell: the day of month and its
// school-day label (an ordinal overlay, not a date).
type CalendarDay struct {
	Day       FlexString `json:"day"`
	DaySchool FlexString `json:"day_school"`
}

// CalendarMonth groups calendar cells by week index; there is no direct day
// index in the source shape.
type CalendarMonth struct {
	Month    FlexString                        `json:"month"`
	DataDays map[string]map[string]CalendarDay `json:"data_days"`
}

// CalendarData maps zero-padded month keys to their school-calendar layout.
// The PHP serializer emits month keys both padded ("04") and bare (4);
// decoding normalizes every key to the padded convention.
type CalendarData map[string]CalendarMonth

// UnmarshalJSON implements json.Unmarshaler.
func (c *CalendarData) UnmarshalJSON(data []byte) error {
	var raw map[string]CalendarMonth
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	norm := make(CalendarData, len(raw))
	for key, month := range raw {
		norm[PadKey(key)] = month
	}
	*c = norm
	return nil
}

// FindDaySchool scans the month's weeks for an entry whose day equals the
// target day and returns its school-day label. Linear over weeks and days,
// which is fine at calendar scale.
func (c CalendarData) FindDaySchool(date string) (string, bool) {
	month, day, err := SplitDate(date)
	if err != nil || c == nil {
		return "", false
	}
	entry, ok := c[month]
	if !ok {
		return "", false
	}
	target, _ := strconv.Atoi(day)
	for _, week := range entry.DataDays {
		for _, cell := range week {
			n, err := strconv.Atoi(cell.Day.String())
			if err == nil && n == target {
				return cell.DaySchool.String(), true
			}
		}
	}
	return "", false
}

// SplitDate breaks a YYYY-MM-DD date into zero-padded month and day keys.
// Lookups must pad before indexing or they silently miss.
func SplitDate(date string) (month, day string, err error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("invalid date %q", date)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return "", "", fmt.Errorf("invalid month in %q", date)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > 31 {
		return "", "", fmt.Errorf("invalid day in %q", date)
	}
	return fmt.Sprintf("%02d", m), fmt.Sprintf("%02d", d), nil
}

// PadKey zero-pads a numeric map key to two digits; non-numeric keys pass
// through unchanged.
func PadKey(key string) string {
	n, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%02d", n)
}

// TodayItemType tags dashboard agenda entries.
type TodayItemType string

const (
	TodayItemWork     TodayItemType = "work"
	TodayItemReminder TodayItemType = "reminder"
)

// TodayItem is one row of the home dashboard's "Para hoy" timeline.
type TodayItem struct {
	Type        TodayItemType
	ID          string
	Subject     string
	Description string
	Teacher     string
}
