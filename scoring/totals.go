package scoring

import "github.com/Dosada05/mahjong-scorebook/models"

// CalculatePlayerTotals sums one player column of a session.
//
// Chips and parlor fee are session-level values kept on the player rows for
// editing; the last non-zero value is taken once and never multiplied by the
// number of rounds.
func CalculatePlayerTotals(playerIndex int, rounds []models.Round, settings models.Settings) models.PlayerTotals {
	var t models.PlayerTotals
	for _, r := range rounds {
		if playerIndex < 0 || playerIndex >= len(r.Players) {
			continue
		}
		p := r.Players[playerIndex]
		if p.Chips != 0 {
			t.Chips = p.Chips
		}
		if p.ParlorFee != 0 {
			t.ParlorFee = p.ParlorFee
		}
		// Spectators and unscored rows carry no score and no marker value,
		// whatever marker is left on them.
		if !p.Ranked() {
			continue
		}
		t.ScoreTotal += *p.Score
		t.BonusTotal += p.BonusMarker.Value()
	}

	t.Subtotal = t.ScoreTotal + t.BonusTotal*settings.BonusValue
	t.Payout = t.Subtotal*settings.PointRate + t.Chips*settings.ChipRate
	t.FinalPayout = t.Payout - t.ParlorFee
	return t
}

// roundRevenue is the payout of a single hanchan without chips and fee.
func roundRevenue(p models.PlayerResult, settings models.Settings) int {
	if !p.Ranked() {
		return 0
	}
	return (*p.Score + p.BonusMarker.Value()*settings.BonusValue) * settings.PointRate
}

// slotCount returns the widest player list among the rounds.
func slotCount(rounds []models.Round) int {
	n := 0
	for _, r := range rounds {
		if len(r.Players) > n {
			n = len(r.Players)
		}
	}
	return n
}
