package scoring

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
)

func intPtr(v int) *int { return &v }

// players builds ranked player rows P1..Pn with user IDs 1..n.
func players(scores ...int) []models.PlayerResult {
	ps := make([]models.PlayerResult, len(scores))
	for i, s := range scores {
		ps[i] = models.PlayerResult{
			PlayerName: fmt.Sprintf("P%d", i+1),
			UserID:     intPtr(i + 1),
			Score:      intPtr(s),
		}
	}
	return ps
}

// roundsOf builds numbered rounds from score rows and assigns markers the
// same way a saved session gets them.
func roundsOf(mode models.GameMode, rule models.BonusRule, rows ...[]int) []models.Round {
	rounds := make([]models.Round, len(rows))
	for i, row := range rows {
		rounds[i] = models.Round{RoundNumber: i + 1, Players: players(row...)}
		ApplyBonusMarkers(&rounds[i], mode, rule)
	}
	return rounds
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertMarkers(t *testing.T, got, want []models.BonusMarker) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("markers = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("markers = %q, want %q", got, want)
		}
	}
}

// scenarioSession is the five-hanchan four-player session used across tests.
// Player 1 enters 5 chips and a 500 parlor fee once, on the first row.
func scenarioSession() models.Session {
	rounds := roundsOf(models.ModeFourPlayer, models.BonusRuleStandard,
		[]int{10, 10, 10, -30},
		[]int{20, 10, -10, -20},
		[]int{15, 5, -5, -15},
		[]int{10, 10, 10, -30},
		[]int{14, 0, 0, -14},
	)
	rounds[0].Players[0].Chips = 5
	rounds[0].Players[0].ParlorFee = 500
	return models.Session{
		ID:         1,
		Date:       date(2026, time.October, 1),
		Mode:       models.ModeFourPlayer,
		PointRate:  30,
		BonusValue: 10,
		ChipRate:   100,
		BonusRule:  models.BonusRuleStandard,
		CreatedAt:  time.Date(2026, time.October, 1, 20, 0, 0, 0, time.UTC),
		Rounds:     rounds,
	}
}
