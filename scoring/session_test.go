package scoring

import (
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/mahjong-scorebook/models"
)

func TestCompactRounds(t *testing.T) {
	empty := models.Round{RoundNumber: 1, Players: players(0, 0, 0, 0)}
	for i := range empty.Players {
		empty.Players[i].Score = nil
	}
	watched := models.Round{RoundNumber: 3, Players: players(10, -10, 0, 0)}
	for i := range watched.Players {
		watched.Players[i].IsSpectator = true
	}

	rounds := []models.Round{
		empty,
		{RoundNumber: 2, Players: players(10, 0, 0, -10)},
		watched,
		{RoundNumber: 4, Players: players(20, 0, 0, -20)},
	}

	got := CompactRounds(rounds)
	if len(got) != 2 {
		t.Fatalf("len(CompactRounds()) = %d, want 2", len(got))
	}
	for i, r := range got {
		if r.RoundNumber != i+1 {
			t.Fatalf("round %d numbered %d", i, r.RoundNumber)
		}
	}
	if *got[1].Players[0].Score != 20 {
		t.Fatalf("second kept round has score %d, want 20", *got[1].Players[0].Score)
	}
	if rounds[3].RoundNumber != 4 {
		t.Fatal("CompactRounds renumbered the input slice")
	}
}

func TestValidateSession(t *testing.T) {
	valid := func() models.Session {
		return models.Session{
			Mode:      models.ModeFourPlayer,
			BonusRule: models.BonusRuleStandard,
			Rounds: []models.Round{
				{RoundNumber: 1, Players: players(10, 0, 0, -10)},
			},
		}
	}

	tests := []struct {
		name   string
		modify func(s *models.Session)
		want   error
	}{
		{name: "valid", modify: func(s *models.Session) {}},
		{
			name: "incomplete round may be unbalanced",
			modify: func(s *models.Session) {
				s.Rounds[0].Players[3].Score = nil
			},
		},
		{
			name:   "invalid mode",
			modify: func(s *models.Session) { s.Mode = "two-player" },
			want:   ErrInvalidMode,
		},
		{
			name:   "invalid bonus rule",
			modify: func(s *models.Session) { s.BonusRule = "anything" },
			want:   ErrInvalidBonusRule,
		},
		{
			name: "memo too long",
			modify: func(s *models.Session) {
				memo := strings.Repeat("あ", models.MaxMemoLength+1)
				s.Memo = &memo
			},
			want: ErrMemoTooLong,
		},
		{
			name: "too few players",
			modify: func(s *models.Session) {
				s.Rounds[0].Players = players(10, 0, -10)
			},
			want: ErrPlayerCountMismatch,
		},
		{
			name: "too many playing",
			modify: func(s *models.Session) {
				s.Rounds[0].Players = players(10, 0, 0, -5, -5)
			},
			want: ErrPlayerCountMismatch,
		},
		{
			name:   "empty name",
			modify: func(s *models.Session) { s.Rounds[0].Players[2].PlayerName = "  " },
			want:   ErrEmptyPlayerName,
		},
		{
			name:   "duplicate user",
			modify: func(s *models.Session) { s.Rounds[0].Players[2].UserID = intPtr(1) },
			want:   ErrDuplicatePlayer,
		},
		{
			name: "guests may share no user",
			modify: func(s *models.Session) {
				s.Rounds[0].Players[2].UserID = nil
				s.Rounds[0].Players[3].UserID = nil
			},
		},
		{
			name:   "zero-sum violation",
			modify: func(s *models.Session) { s.Rounds[0].Players[0].Score = intPtr(11) },
			want:   ErrZeroSumViolation,
		},
		{
			name: "no scores",
			modify: func(s *models.Session) {
				for i := range s.Rounds[0].Players {
					s.Rounds[0].Players[i].Score = nil
				}
			},
			want: ErrNoScores,
		},
		{
			name: "user moves to another column",
			modify: func(s *models.Session) {
				moved := players(20, 10, -10, -20)
				moved[0].UserID, moved[1].UserID = intPtr(4), intPtr(3)
				moved[2].UserID, moved[3].UserID = intPtr(2), intPtr(1)
				s.Rounds = append(s.Rounds, models.Round{RoundNumber: 2, Players: moved})
			},
			want: ErrDuplicatePlayer,
		},
		{
			name: "column changes user",
			modify: func(s *models.Session) {
				next := players(20, 10, -10, -20)
				next[3].UserID = intPtr(9)
				s.Rounds = append(s.Rounds, models.Round{RoundNumber: 2, Players: next})
			},
			want: ErrDuplicatePlayer,
		},
		{
			name: "empty round with blank names is dropped",
			modify: func(s *models.Session) {
				s.Rounds = append(s.Rounds, models.Round{RoundNumber: 2, Players: make([]models.PlayerResult, 4)})
			},
		},
		{
			name: "empty round with missing rows is dropped",
			modify: func(s *models.Session) {
				s.Rounds = append([]models.Round{{RoundNumber: 1}}, s.Rounds...)
			},
		},
		{
			name:   "invalid marker",
			modify: func(s *models.Session) { s.Rounds[0].Players[0].BonusMarker = "++++" },
			want:   ErrInvalidBonusMarker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(&s)
			err := ValidateSession(s)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ValidateSession() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateSession() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSummarizeSession(t *testing.T) {
	s := scenarioSession()

	tests := []struct {
		userID int
		want   models.SessionSummary
	}{
		{
			userID: 1,
			want: models.SessionSummary{
				UserID: 1, RoundCount: 5, RankCounts: []int{5, 0, 0, 0}, AverageRank: 1,
				ScoreTotal: 69, TotalPayout: 5070, TotalChips: 5, OverallRank: 1,
			},
		},
		{
			userID: 2,
			want: models.SessionSummary{
				UserID: 2, RoundCount: 5, RankCounts: []int{0, 5, 0, 0}, AverageRank: 2,
				ScoreTotal: 35, TotalPayout: 2550, OverallRank: 2,
			},
		},
		{
			userID: 4,
			want: models.SessionSummary{
				UserID: 4, RoundCount: 5, RankCounts: []int{0, 0, 0, 5}, AverageRank: 4,
				ScoreTotal: -109, TotalPayout: -6270, OverallRank: 4,
			},
		},
	}
	for _, tt := range tests {
		got, ok := SummarizeSession(s, tt.userID)
		if !ok {
			t.Fatalf("user %d: SummarizeSession() ok = false", tt.userID)
		}
		if got.RoundCount != tt.want.RoundCount || got.AverageRank != tt.want.AverageRank ||
			got.ScoreTotal != tt.want.ScoreTotal || got.TotalPayout != tt.want.TotalPayout ||
			got.TotalChips != tt.want.TotalChips || got.OverallRank != tt.want.OverallRank {
			t.Fatalf("user %d: SummarizeSession() = %+v, want %+v", tt.userID, got, tt.want)
		}
		for i := range tt.want.RankCounts {
			if got.RankCounts[i] != tt.want.RankCounts[i] {
				t.Fatalf("user %d: RankCounts = %v, want %v", tt.userID, got.RankCounts, tt.want.RankCounts)
			}
		}
	}

	if _, ok := SummarizeSession(s, 99); ok {
		t.Fatal("SummarizeSession() ok = true for a user outside the session")
	}
}
