package datefmt

import (
	"fmt"
	"time"
)

// Пакет форматирует дату записи для текстов уведомлений.
// Формат повторяет шаблон "dia dd de MMM, às H:mmh" с сокращёнными
// названиями месяцев для выбранной локали.

// Locale коды поддерживаемых локалей
const (
	LocalePT = "pt"
	LocaleEN = "en"
)

var monthsPT = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

var monthsEN = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Format возвращает локализованную строку вида "dia 15 de out, às 10:00h".
// Для неизвестной локали используется английский вариант.
func Format(t time.Time, locale string) string {
	month := int(t.Month()) - 1

	switch locale {
	case LocalePT:
		return fmt.Sprintf("dia %02d de %s, às %d:%02dh", t.Day(), monthsPT[month], t.Hour(), t.Minute())
	default:
		return fmt.Sprintf("%s %02d at %d:%02d", monthsEN[month], t.Day(), t.Hour(), t.Minute())
	}
}
