package business

import (
	"slices"
	"time"
)

type Break struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewBreak(start, end TimeOfDay) (Break, error) {
	if start >= end {
		return Break{}, ErrInvalidBreak
	}
	return Break{start: start, end: end}, nil
}

func (b Break) Start() TimeOfDay { return b.start }
func (b Break) End() TimeOfDay   { return b.end }

// intersects uses the half-open test breakStart < end && breakEnd > start.
func (b Break) intersects(start, end TimeOfDay) bool {
	return b.start < end && b.end > start
}

type DayHours struct {
	isOpen bool
	open   TimeOfDay
	close  TimeOfDay
	breaks []Break
}

func ClosedDay() DayHours {
	return DayHours{}
}

func NewDayHours(open, closeAt TimeOfDay, breaks []Break) (DayHours, error) {
	if open >= closeAt || closeAt > endOfDay {
		return DayHours{}, ErrInvalidDayHours
	}
	for _, br := range breaks {
		if br.start < open || br.end > closeAt {
			return DayHours{}, ErrInvalidBreak
		}
	}
	sorted := slices.Clone(breaks)
	slices.SortFunc(sorted, func(a, b Break) int { return int(a.start - b.start) })
	return DayHours{isOpen: true, open: open, close: closeAt, breaks: sorted}, nil
}

func (d DayHours) IsOpen() bool     { return d.isOpen }
func (d DayHours) Open() TimeOfDay  { return d.open }
func (d DayHours) Close() TimeOfDay { return d.close }
func (d DayHours) Breaks() []Break  { return slices.Clone(d.breaks) }

// Check classifies the candidate [start, end) against this day.
func (d DayHours) Check(start, end TimeOfDay) HoursCheck {
	if !d.isOpen {
		return HoursClosed
	}
	if start >= end || start < d.open || end > d.close {
		return HoursOutsideHours
	}
	for _, br := range d.breaks {
		if br.intersects(start, end) {
			return HoursOverlapsBreak
		}
	}
	return HoursOK
}

// Hours maps each weekday to its opening hours. Missing days are closed.
type Hours struct {
	days map[time.Weekday]DayHours
}

func NewHours(days map[time.Weekday]DayHours) Hours {
	cp := make(map[time.Weekday]DayHours, len(days))
	for d, h := range days {
		cp[d] = h
	}
	return Hours{days: cp}
}

func (h Hours) Day(d time.Weekday) DayHours {
	if day, ok := h.days[d]; ok {
		return day
	}
	return ClosedDay()
}

func (h Hours) Check(d time.Weekday, start, end TimeOfDay) HoursCheck {
	return h.Day(d).Check(start, end)
}

// BreakSpec, DaySpec and HoursSpec are the serialized form used by the API and storage.
type BreakSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DaySpec struct {
	IsOpen    bool        `json:"isOpen"`
	OpenTime  string      `json:"openTime,omitempty"`
	CloseTime string      `json:"closeTime,omitempty"`
	Breaks    []BreakSpec `json:"breaks,omitempty"`
}

// HoursSpec is keyed by lowercase weekday name ("monday" ... "sunday").
type HoursSpec map[string]DaySpec

func HoursFromSpec(spec HoursSpec) (Hours, error) {
	days := make(map[time.Weekday]DayHours, len(spec))
	for name, ds := range spec {
		wd, err := ParseWeekday(name)
		if err != nil {
			return Hours{}, err
		}
		if !ds.IsOpen {
			days[wd] = ClosedDay()
			continue
		}
		open, err := ParseTimeOfDay(ds.OpenTime)
		if err != nil {
			return Hours{}, err
		}
		closeAt, err := ParseTimeOfDay(ds.CloseTime)
		if err != nil {
			return Hours{}, err
		}
		breaks := make([]Break, 0, len(ds.Breaks))
		for _, bs := range ds.Breaks {
			bStart, err := ParseTimeOfDay(bs.Start)
			if err != nil {
				return Hours{}, err
			}
			bEnd, err := ParseTimeOfDay(bs.End)
			if err != nil {
				return Hours{}, err
			}
			br, err := NewBreak(bStart, bEnd)
			if err != nil {
				return Hours{}, err
			}
			breaks = append(breaks, br)
		}
		day, err := NewDayHours(open, closeAt, breaks)
		if err != nil {
			return Hours{}, err
		}
		days[wd] = day
	}
	return NewHours(days), nil
}

func (h Hours) Spec() HoursSpec {
	spec := make(HoursSpec, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := h.Day(wd)
		if !day.isOpen {
			spec[WeekdayName(wd)] = DaySpec{IsOpen: false}
			continue
		}
		ds := DaySpec{
			IsOpen:    true,
			OpenTime:  day.open.String(),
			CloseTime: day.close.String(),
		}
		for _, br := range day.breaks {
			ds.Breaks = append(ds.Breaks, BreakSpec{Start: br.start.String(), End: br.end.String()})
		}
		spec[WeekdayName(wd)] = ds
	}
	return spec
}
