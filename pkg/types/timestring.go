package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat - формат времени HH:MM.
const TimeFormat = "15:04"

const minutesPerDay = 24 * 60

// TimeString представляет время в формате "HH:MM" (например, "09:30").
// Хранится как строка, чтобы без потерь ходить в JSON и в колонку TIME.
type TimeString string

// NewTimeString создает TimeString из time.Time, отбрасывая дату и секунды.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}

	return ts, nil
}

// String возвращает строковое представление времени.
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка соответствует формату "HH:MM".
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("invalid time format %q, expected HH:MM: %w", string(t), err)
	}

	return nil
}

// MinutesFromMidnight возвращает количество минут от полуночи.
// Для невалидного значения возвращает 0.
func (t TimeString) MinutesFromMidnight() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0
	}

	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Переход через полночь заворачивается: "23:30".AddMinutes(60) == "00:30".
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	total := (t.MinutesFromMidnight() + minutes) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other в пределах суток.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.MinutesFromMidnight() < other.MinutesFromMidnight()
}

// IsAfter возвращает true, если t строго позже other в пределах суток.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.MinutesFromMidnight() > other.MinutesFromMidnight()
}

// Value реализует driver.Valuer для записи в колонку TIME.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из колонки TIME.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres отдает TIME как "HH:MM:SS" - обрезаем секунды.
	if len(s) > len(TimeFormat) {
		s = s[:len(TimeFormat)]
	}

	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}

	*t = ts

	return nil
}
