package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

type studentRepository interface {
	GetInfoStudent(ctx context.Context) (*models.StudentCourseInfo, error)
	GetListWorks(ctx context.Context, course string) (models.WorkCalendar, error)
	GetListReminders(ctx context.Context, course string) (models.ReminderCalendar, error)
	GetCalendar(ctx context.Context) (models.CalendarData, error)
	GetCheckDays(ctx context.Context) (models.CheckedDays, error)
}

// AgendaService assembles the virtual agenda: the per-day work and reminder
// indexes, the school calendar overlay and the reviewed-day checkmarks.
type AgendaService struct {
	repo              studentRepository
	logger            *zap.Logger
	legacyTodayOffset bool
	now               func() time.Time
}

func NewAgendaService(repo studentRepository, logger *zap.Logger, legacyTodayOffset bool) *AgendaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgendaService{
		repo:              repo,
		logger:            logger,
		legacyTodayOffset: legacyTodayOffset,
		now:               time.Now,
	}
}

// AgendaData is one full load of the agenda screen's inputs.
type AgendaData struct {
	Course    models.StudentCourseInfo
	Works     models.WorkCalendar
	Reminders models.ReminderCalendar
	Calendar  models.CalendarData
	Checked   models.CheckedDays
}

// Load fetches everything the agenda needs. The course lookup gates the
// works and reminders queries; the calendar and checked-day overlays are
// decorative, so their failures are logged and the load continues without
// them.
func (s *AgendaService) Load(ctx context.Context) (*AgendaData, error) {
	info, err := s.repo.GetInfoStudent(ctx)
	if err != nil {
		return nil, err
	}

	data := &AgendaData{
		Course:    *info,
		Works:     models.WorkCalendar{},
		Reminders: models.ReminderCalendar{},
		Calendar:  models.CalendarData{},
		Checked:   models.CheckedDays{},
	}
	course := info.IDCourse.String()

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		works, err := s.repo.GetListWorks(ctx, course)
		if err != nil {
			s.logger.Warn("agenda: works unavailable", zap.String("course", course), zap.Error(err))
			return
		}
		data.Works = works
	}()
	go func() {
		defer wg.Done()
		reminders, err := s.repo.GetListReminders(ctx, course)
		if err != nil {
			s.logger.Warn("agenda: reminders unavailable", zap.String("course", course), zap.Error(err))
			return
		}
		data.Reminders = reminders
	}()
	go func() {
		defer wg.Done()
		calendar, err := s.repo.GetCalendar(ctx)
		if err != nil {
			s.logger.Warn("agenda: school calendar unavailable", zap.Error(err))
			return
		}
		data.Calendar = calendar
	}()
	go func() {
		defer wg.Done()
		checked, err := s.repo.GetCheckDays(ctx)
		if err != nil {
			s.logger.Warn("agenda: checked days unavailable", zap.Error(err))
			return
		}
		data.Checked = checked
	}()
	wg.Wait()

	return data, nil
}

// DayView is one selected day of the agenda.
type DayView struct {
	Date      string
	Works     []models.WorkItem
	Reminders []models.ReminderItem
	DaySchool string
	Checked   bool
}

// SelectDay projects the loaded data onto one YYYY-MM-DD date. Selecting a
// date with no entries is valid and yields empty, non-nil slices.
func (s *AgendaService) SelectDay(data *AgendaData, date string) DayView {
	view := DayView{
		Date:      date,
		Works:     []models.WorkItem{},
		Reminders: []models.ReminderItem{},
	}
	if data == nil {
		return view
	}
	view.Works = data.Works.ForDate(date)
	view.Reminders = data.Reminders.ForDate(date)
	view.DaySchool, _ = data.Calendar.FindDaySchool(date)
	view.Checked = data.Checked.IsChecked(date)
	return view
}

// Today returns the local date key, built from wall-clock components so the
// result never shifts across a timezone-sensitive parse.
func (s *AgendaService) Today() string {
	return FormatDateKey(s.now())
}

// InitialSelection picks the day the agenda opens on: today, shifted past
// the weekend when today is Saturday or Sunday.
func (s *AgendaService) InitialSelection(data *AgendaData) DayView {
	day := NextBusinessDay(s.now())
	return s.SelectDay(data, FormatDateKey(day))
}

// TodayItems builds the home dashboard's "for today" timeline. The default
// mode reads today's real date. The legacy mode reproduces the historical
// behavior: the lookup lands on yesterday's key, and the works list is
// unioned with a bucket addressed by an unpadded key three days back, which
// on zero-padded data resolves to nothing.
func (s *AgendaService) TodayItems(data *AgendaData) []models.TodayItem {
	items := []models.TodayItem{}
	if data == nil {
		return items
	}

	now := s.now()
	month := fmt.Sprintf("%02d", int(now.Month()))
	dayNum := now.Day()
	if s.legacyTodayOffset {
		dayNum--
	}
	day := fmt.Sprintf("%02d", dayNum)

	bucket, bucketPresent := data.Works[month][day]
	works := append([]models.WorkItem{}, bucket...)
	if s.legacyTodayOffset && bucketPresent {
		// The historical union ran whenever the day key existed, even when
		// its bucket was empty.
		works = append(works, data.Works[month][strconv.Itoa(dayNum-3)]...)
	}
	for _, w := range works {
		items = append(items, models.TodayItem{
			Type:        models.TodayItemWork,
			ID:          w.ID.String(),
			Subject:     w.Subject,
			Description: w.Description,
			Teacher:     textutil.ToCapitalCase(w.Teacher),
		})
	}
	for _, r := range data.Reminders[month][day] {
		items = append(items, models.TodayItem{
			Type:        models.TodayItemReminder,
			ID:          r.ID.String(),
			Description: textutil.CapitalizeFirst(r.Description),
		})
	}
	return items
}

// FormatDateKey renders a time as the YYYY-MM-DD key the calendars use.
func FormatDateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextBusinessDay shifts a weekend date to the following Monday and leaves
// weekdays untouched.
func NextBusinessDay(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}
