package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/domain/directory"
	"github.com/glowdesk/glowdesk/internal/domain/scheduling"
	"github.com/glowdesk/glowdesk/internal/platform/cache"
	"github.com/glowdesk/glowdesk/pkg/timeutil"
)

// ErrNoStaff is returned when a week view is requested and the salon has
// no active staff to show.
var ErrNoStaff = errors.New("no active staff")

const cacheTTL = time.Minute

// Window is the bookable portion of a day and the grid resolution the
// calendar renders at.
type Window struct {
	StartMinutes int
	EndMinutes   int
	SlotMinutes  int
}

// Projector builds read-only calendar views from the appointment store.
// Views are cached briefly; any appointment write invalidates the whole
// calendar: prefix.
type Projector struct {
	appts  *scheduling.Service
	staff  directory.StaffRepository
	cache  cache.Cache
	window Window
}

func NewProjector(appts *scheduling.Service, staff directory.StaffRepository, c cache.Cache, window Window) *Projector {
	return &Projector{appts: appts, staff: staff, cache: c, window: window}
}

func (p *Projector) cached(ctx context.Context, key string, out interface{}) bool {
	if p.cache == nil {
		return false
	}
	data, ok := p.cache.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (p *Projector) store(ctx context.Context, key string, v interface{}) {
	if p.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		p.cache.Set(ctx, key, data, cacheTTL)
	}
}

// selectionKey is the cache-key fragment for a staff selection. The ids
// are sorted so equivalent selections share a cache entry.
func selectionKey(staffIDs []uuid.UUID) string {
	if len(staffIDs) == 0 {
		return "all"
	}
	ids := make([]string, len(staffIDs))
	for i, id := range staffIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func inSelection(staffIDs []uuid.UUID, id uuid.UUID) bool {
	if len(staffIDs) == 0 {
		return true
	}
	for _, s := range staffIDs {
		if s == id {
			return true
		}
	}
	return false
}

// Day renders one day as staff columns over the configured window. An
// empty staffIDs selection shows every active staff member plus the
// unassigned lane; a non-empty selection narrows to those columns.
func (p *Projector) Day(ctx context.Context, date time.Time, staffIDs []uuid.UUID) (*DayView, error) {
	day := timeutil.StartOfDay(date)
	key := fmt.Sprintf("calendar:day:%s:%s", day.Format("2006-01-02"), selectionKey(staffIDs))

	var view DayView
	if p.cached(ctx, key, &view) {
		return &view, nil
	}

	staff, err := p.staff.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := p.appts.ListInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	windowStart := day.Add(time.Duration(p.window.StartMinutes) * time.Minute)

	byStaff := make(map[uuid.UUID][]Entry)
	var unassigned []Entry
	for _, a := range appts {
		entry := toEntry(a, windowStart, p.window.SlotMinutes)
		if a.StaffID == nil {
			unassigned = append(unassigned, entry)
		} else {
			byStaff[*a.StaffID] = append(byStaff[*a.StaffID], entry)
		}
	}

	columns := make([]StaffColumn, 0, len(staff))
	for _, s := range staff {
		if !inSelection(staffIDs, s.ID) {
			continue
		}
		col := StaffColumn{
			StaffID:      s.ID,
			StaffName:    s.DisplayName,
			Color:        s.Color,
			Appointments: byStaff[s.ID],
		}
		if col.Appointments == nil {
			col.Appointments = []Entry{}
		}
		columns = append(columns, col)
	}
	if len(staffIDs) > 0 || unassigned == nil {
		unassigned = []Entry{}
	}

	view = DayView{
		Date:        day.Format("2006-01-02"),
		WindowStart: timeutil.FormatClock(p.window.StartMinutes),
		WindowEnd:   timeutil.FormatClock(p.window.EndMinutes),
		SlotMinutes: p.window.SlotMinutes,
		Columns:     columns,
		Unassigned:  unassigned,
	}
	p.store(ctx, key, &view)
	return &view, nil
}

// Week renders a Monday-anchored week for a single staff member. When
// staffID is nil the first active staff member is shown.
func (p *Projector) Week(ctx context.Context, date time.Time, staffID *uuid.UUID) (*WeekView, error) {
	weekStart := timeutil.StartOfWeek(date)

	var member *directory.Staff
	if staffID != nil {
		s, err := p.staff.GetByID(ctx, *staffID)
		if err != nil {
			return nil, err
		}
		member = s
	} else {
		active, err := p.staff.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if len(active) == 0 {
			return nil, ErrNoStaff
		}
		member = active[0]
	}

	key := fmt.Sprintf("calendar:week:%s:%s", weekStart.Format("2006-01-02"), member.ID)
	var view WeekView
	if p.cached(ctx, key, &view) {
		return &view, nil
	}

	appts, err := p.appts.ListInRange(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	days := make([]WeekDay, 7)
	for i := range days {
		dayStart := weekStart.AddDate(0, 0, i)
		windowStart := dayStart.Add(time.Duration(p.window.StartMinutes) * time.Minute)
		entries := []Entry{}
		for _, a := range appts {
			if a.StaffID == nil || *a.StaffID != member.ID {
				continue
			}
			if !timeutil.SameDay(a.StartTime, dayStart) {
				continue
			}
			entries = append(entries, toEntry(a, windowStart, p.window.SlotMinutes))
		}
		days[i] = WeekDay{Date: dayStart.Format("2006-01-02"), Appointments: entries}
	}

	view = WeekView{
		WeekStart:   weekStart.Format("2006-01-02"),
		StaffID:     member.ID,
		StaffName:   member.DisplayName,
		SlotMinutes: p.window.SlotMinutes,
		Days:        days,
	}
	p.store(ctx, key, &view)
	return &view, nil
}

// Month renders the padded month grid with per-day previews, narrowed to
// the staff selection when one is given (unassigned bookings only show
// with an empty selection).
func (p *Projector) Month(ctx context.Context, year int, month time.Month, staffIDs []uuid.UUID) (*MonthView, error) {
	key := fmt.Sprintf("calendar:month:%04d-%02d:%s", year, month, selectionKey(staffIDs))
	var view MonthView
	if p.cached(ctx, key, &view) {
		return &view, nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	gridStart, gridEnd := timeutil.MonthGridRange(first)

	appts, err := p.appts.ListInRange(ctx, gridStart, gridEnd)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*scheduling.Appointment)
	for _, a := range appts {
		if a.StaffID == nil {
			if len(staffIDs) > 0 {
				continue
			}
		} else if !inSelection(staffIDs, *a.StaffID) {
			continue
		}
		d := timeutil.StartOfDay(a.StartTime).Format("2006-01-02")
		byDay[d] = append(byDay[d], a)
	}

	var weeks [][]MonthDay
	for cur := gridStart; cur.Before(gridEnd); cur = cur.AddDate(0, 0, 7) {
		week := make([]MonthDay, 7)
		for i := 0; i < 7; i++ {
			dayStart := cur.AddDate(0, 0, i)
			dateStr := dayStart.Format("2006-01-02")
			dayAppts := byDay[dateStr]
			windowStart := dayStart.Add(time.Duration(p.window.StartMinutes) * time.Minute)

			preview := []Entry{}
			for _, a := range dayAppts {
				if len(preview) == previewLimit {
					break
				}
				preview = append(preview, toEntry(a, windowStart, p.window.SlotMinutes))
			}
			week[i] = MonthDay{
				Date:          dateStr,
				InMonth:       dayStart.Month() == month,
				Preview:       preview,
				OverflowCount: max(0, len(dayAppts)-previewLimit),
				Total:         len(dayAppts),
			}
		}
		weeks = append(weeks, week)
	}

	view = MonthView{
		Month: fmt.Sprintf("%04d-%02d", year, month),
		Weeks: weeks,
	}
	p.store(ctx, key, &view)
	return &view, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
