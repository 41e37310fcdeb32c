package repository

import (
	"context"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

// StudentRepository reads agenda data for the student bound to the session:
// course membership, works, reminders, the school calendar and the checked
// days the student already confirmed.
type StudentRepository struct {
	api          poster
	workClassURL string
}

func NewStudentRepository(api poster, workClassURL string) *StudentRepository {
	return &StudentRepository{api: api, workClassURL: workClassURL}
}

// GetInfoStudent resolves the course identifier the works and reminders
// queries key on.
func (r *StudentRepository) GetInfoStudent(ctx context.Context) (*models.StudentCourseInfo, error) {
	env, err := r.api.Post(ctx, r.workClassURL, map[string]string{
		"base":  baseCAA,
		"param": "getInfoStudent",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getInfoStudent"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "getInfoStudent: no course for session")
	}
	info := &models.StudentCourseInfo{}
	if err := decodeInto(env, "getInfoStudent", info); err != nil {
		return nil, err
	}
	return info, nil
}

// GetListWorks returns the month/day work index for a course. Missing data
// comes back as an empty calendar rather than an error.
func (r *StudentRepository) GetListWorks(ctx context.Context, course string) (models.WorkCalendar, error) {
	env, err := r.api.Post(ctx, r.workClassURL, map[string]string{
		"base":   baseCAA,
		"param":  "getListWorks",
		"course": course,
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getListWorks"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return models.WorkCalendar{}, nil
	}
	var calendar models.WorkCalendar
	if err := decodeInto(env, "getListWorks", &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// GetListReminders returns the month/day reminder index for a course.
func (r *StudentRepository) GetListReminders(ctx context.Context, course string) (models.ReminderCalendar, error) {
	env, err := r.api.Post(ctx, r.workClassURL, map[string]string{
		"base":   baseCAA,
		"param":  "getListReminders",
		"course": course,
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getListReminders"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return models.ReminderCalendar{}, nil
	}
	var calendar models.ReminderCalendar
	if err := decodeInto(env, "getListReminders", &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// GetCalendar returns the institutional calendar with per-day school-day
// markers. The mod_check field is a controller switch that must travel as
// the literal string "false".
func (r *StudentRepository) GetCalendar(ctx context.Context) (models.CalendarData, error) {
	env, err := r.api.Post(ctx, r.workClassURL, map[string]string{
		"base":      baseCAA,
		"param":     "getCalendar",
		"mod_check": "false",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getCalendar"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return models.CalendarData{}, nil
	}
	var calendar models.CalendarData
	if err := decodeInto(env, "getCalendar", &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// GetCheckDays lists the dates the student has already marked as reviewed.
func (r *StudentRepository) GetCheckDays(ctx context.Context) (models.CheckedDays, error) {
	env, err := r.api.Post(ctx, r.workClassURL, map[string]string{
		"base":       baseCAA,
		"param":      "getCheckDays",
		"id_student": "false",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getCheckDays"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return models.CheckedDays{}, nil
	}
	var days models.CheckedDays
	if err := decodeInto(env, "getCheckDays", &days); err != nil {
		return nil, err
	}
	return days, nil
}
