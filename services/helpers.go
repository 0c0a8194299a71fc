package services

import (
	"strings"

	"github.com/Dosada05/mahjong-scorebook/realtime"
)

// nopNotifier используется, когда лента изменений не подключена.
type nopNotifier struct{}

func (nopNotifier) Notify(string, string, interface{}) {}

func notifierOrNop(n realtime.Notifier) realtime.Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// normalizeMemo обрезает пробелы; пустая заметка хранится как NULL.
func normalizeMemo(memo *string) *string {
	if memo == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*memo)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
