package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
)

const yearPeriodPrefix = "year-"

// YearPeriod builds the period for a whole calendar year.
func YearPeriod(year int) models.Period {
	return models.Period(fmt.Sprintf("%s%04d", yearPeriodPrefix, year))
}

// ParsePeriod validates a period string. An empty string means all-time.
func ParsePeriod(s string) (models.Period, error) {
	switch p := models.Period(s); p {
	case "":
		return models.PeriodAllTime, nil
	case models.PeriodThisMonth, models.PeriodThisYear, models.PeriodAllTime:
		return p, nil
	}
	if rest, ok := strings.CutPrefix(s, yearPeriodPrefix); ok && len(rest) == 4 {
		if year, err := strconv.Atoi(rest); err == nil && year > 0 {
			return YearPeriod(year), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

func periodMatches(period models.Period, date, now time.Time) bool {
	switch period {
	case models.PeriodAllTime, "":
		return true
	case models.PeriodThisYear:
		return date.Year() == now.Year()
	case models.PeriodThisMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	}
	if rest, ok := strings.CutPrefix(string(period), yearPeriodPrefix); ok {
		year, err := strconv.Atoi(rest)
		return err == nil && date.Year() == year
	}
	return false
}

// FilterSessions keeps the sessions whose date falls into the period and
// whose mode passes the mode filter. Input order is preserved.
func FilterSessions(sessions []models.Session, period models.Period, mode models.ModeFilter, now time.Time) []models.Session {
	filtered := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if !mode.Matches(s.Mode) || !periodMatches(period, s.Date, now) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// AvailableYears lists the distinct session years, newest first.
func AvailableYears(sessions []models.Session) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, s := range sessions {
		y := s.Date.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// RoundsOf flattens the rounds of the given sessions.
func RoundsOf(sessions []models.Session) []models.Round {
	rounds := make([]models.Round, 0)
	for _, s := range sessions {
		rounds = append(rounds, s.Rounds...)
	}
	return rounds
}
