package timeutil

import "time"

// Пакет содержит чистые функции для работы с границами дня и ISO датами.
// Состояния нет, все вычисления выполняются в таймзоне входного значения.

// StartOfDay возвращает начало дня (00:00:00.000) для переданного момента
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay возвращает конец дня (23:59:59.999999999) для переданного момента
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// HoursBefore возвращает момент за hours часов до t
func HoursBefore(t time.Time, hours int) time.Time {
	return t.Add(-time.Duration(hours) * time.Hour)
}

// ParseISO разбирает дату в формате ISO 8601 / RFC 3339
func ParseISO(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
