package activity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts used for the stored string columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SleepKind classifies sleep-category activities by title.
type SleepKind string

const (
	SleepNone SleepKind = ""
	SleepWake SleepKind = "wake"
	SleepBed  SleepKind = "bed"
	SleepNap  SleepKind = "nap"
)

// sleepKeywords lists the title fragments recognised for each kind.
// French keywords are matched alongside English ones.
var sleepKeywords = []struct {
	kind  SleepKind
	words []string
}{
	{SleepWake, []string{"wake", "réveil"}},
	{SleepBed, []string{"bed", "coucher"}},
	{SleepNap, []string{"nap", "sieste"}},
}

// Domain errors
var (
	ErrNotFound         = errors.New("activity not found")
	ErrEmptyTitle       = errors.New("activity title cannot be empty")
	ErrEmptyCategoryID  = errors.New("activity category cannot be empty")
	ErrInvalidDate      = errors.New("activity date must be YYYY-MM-DD")
	ErrInvalidStartTime = errors.New("activity start time must be HH:MM")
	ErrInvalidEndTime   = errors.New("activity end time must be HH:MM")
)

// Activity is a titled, time-boxed, completable calendar entry assigned to one category.
// Start and end fall on the same calendar day.
type Activity struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
	CategoryID string `json:"categoryId"`
	Completed  bool   `json:"completed"`
	Date       string `json:"date"` // YYYY-MM-DD
}

// Validate checks if the Activity has valid data.
// PRE: Activity struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(a.CategoryID) == "" {
		return ErrEmptyCategoryID
	}
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := ParseClock(a.StartTime); err != nil {
		return ErrInvalidStartTime
	}
	if _, err := ParseClock(a.EndTime); err != nil {
		return ErrInvalidEndTime
	}
	return nil
}

// DurationMinutes returns end minus start on the activity's day.
// Unparseable or inverted ranges count as zero.
func (a *Activity) DurationMinutes() int {
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return 0
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return 0
	}
	if end < start {
		return 0
	}
	return end - start
}

// Day returns the activity date at local midnight.
func (a *Activity) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, a.Date, time.Local)
}

// StartsAt returns the start instant in the given location.
func (a *Activity) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.StartTime, loc)
}

// SleepKind classifies the title by case-insensitive substring.
func (a *Activity) SleepKind() SleepKind {
	return ClassifyTitle(a.Title)
}

// NormalizeMarker syncs EndTime to StartTime when the title is exactly a wake or bed marker.
// Markers are instants, not intervals.
func (a *Activity) NormalizeMarker() {
	if IsMarkerTitle(a.Title) {
		a.EndTime = a.StartTime
	}
}

// ClassifyTitle returns the sleep kind a title refers to.
func ClassifyTitle(title string) SleepKind {
	lower := strings.ToLower(title)
	for _, k := range sleepKeywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				return k.kind
			}
		}
	}
	return SleepNone
}

// IsMarkerTitle reports whether title is exactly a wake or bed keyword.
func IsMarkerTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, k := range sleepKeywords {
		if k.kind == SleepNap {
			continue
		}
		for _, w := range k.words {
			if lower == w {
				return true
			}
		}
	}
	return false
}

// ParseClock converts "HH:MM" to minutes since midnight.
// "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Preset is a suggested title and time range offered when scheduling sleep.
type Preset struct {
	Title     string
	StartTime string
	EndTime   string
}

// SleepPresets are the suggestions shown when the sleep category is selected.
var SleepPresets = []Preset{
	{Title: "Wake", StartTime: "07:00", EndTime: "07:00"},
	{Title: "Bed", StartTime: "22:00", EndTime: "22:00"},
	{Title: "Nap", StartTime: "14:00", EndTime: "15:00"},
}
