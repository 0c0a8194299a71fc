package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Period
		wantErr bool
	}{
		{in: "", want: models.PeriodAllTime},
		{in: "this-month", want: models.PeriodThisMonth},
		{in: "this-year", want: models.PeriodThisYear},
		{in: "all-time", want: models.PeriodAllTime},
		{in: "year-2024", want: "year-2024"},
		{in: "year-24", wantErr: true},
		{in: "year-abcd", wantErr: true},
		{in: "last-week", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPeriod) {
					t.Fatalf("ParsePeriod(%q) error = %v, want ErrInvalidPeriod", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParsePeriod(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFilterSessions(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{ID: 1, Date: date(2026, time.October, 1), Mode: models.ModeFourPlayer},
		{ID: 2, Date: date(2026, time.March, 5), Mode: models.ModeThreePlayer},
		{ID: 3, Date: date(2025, time.December, 31), Mode: models.ModeFourPlayer},
	}

	tests := []struct {
		name   string
		period models.Period
		mode   models.ModeFilter
		want   []int
	}{
		{name: "this month", period: models.PeriodThisMonth, mode: models.ModeFilterAll, want: []int{1}},
		{name: "this year", period: models.PeriodThisYear, mode: models.ModeFilterAll, want: []int{1, 2}},
		{name: "given year", period: YearPeriod(2025), mode: models.ModeFilterAll, want: []int{3}},
		{name: "all time four player", period: models.PeriodAllTime, mode: models.ModeFilterFourPlayer, want: []int{1, 3}},
		{name: "this year three player", period: models.PeriodThisYear, mode: models.ModeFilterThreePlayer, want: []int{2}},
		{name: "nothing", period: YearPeriod(2019), mode: models.ModeFilterAll, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSessions(sessions, tt.period, tt.mode, now)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterSessions() returned %d sessions, want %v", len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("FilterSessions()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestAvailableYears(t *testing.T) {
	sessions := []models.Session{
		{Date: date(2024, time.May, 1)},
		{Date: date(2026, time.January, 1)},
		{Date: date(2024, time.June, 1)},
		{Date: date(2025, time.July, 1)},
	}
	got := AvailableYears(sessions)
	want := []int{2026, 2025, 2024}
	if len(got) != len(want) {
		t.Fatalf("AvailableYears() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AvailableYears() = %v, want %v", got, want)
		}
	}
}
