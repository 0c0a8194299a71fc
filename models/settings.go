package models

// GameMode - количество игроков за столом.
type GameMode string

const (
	ModeThreePlayer GameMode = "three-player"
	ModeFourPlayer  GameMode = "four-player"
)

func (m GameMode) IsValid() bool {
	return m == ModeThreePlayer || m == ModeFourPlayer
}

// PlayerCount возвращает число ранжируемых игроков в ханчане для режима.
func (m GameMode) PlayerCount() int {
	switch m {
	case ModeThreePlayer:
		return 3
	case ModeFourPlayer:
		return 4
	default:
		return 0
	}
}

// ModeFilter используется при выборке статистики. ModeFilterAll отключает
// статистику мест, так как в трёх- и четырёхместной игре разное число мест.
type ModeFilter string

const (
	ModeFilterThreePlayer ModeFilter = ModeFilter(ModeThreePlayer)
	ModeFilterFourPlayer  ModeFilter = ModeFilter(ModeFourPlayer)
	ModeFilterAll         ModeFilter = "all"
)

func (f ModeFilter) IsValid() bool {
	return f == ModeFilterThreePlayer || f == ModeFilterFourPlayer || f == ModeFilterAll
}

// Matches сообщает, проходит ли сессия с данным режимом через фильтр.
func (f ModeFilter) Matches(mode GameMode) bool {
	return f == ModeFilterAll || GameMode(f) == mode
}

// BonusRule - правило раздачи уммы.
type BonusRule string

const (
	BonusRuleStandard         BonusRule = "standard"
	BonusRuleSecondPlaceMinus BonusRule = "second-place-minus"
)

func (r BonusRule) IsValid() bool {
	return r == BonusRuleStandard || r == BonusRuleSecondPlaceMinus
}

// BonusMarker - отметка уммы за ханчан. Пустая строка означает отсутствие отметки.
type BonusMarker string

const (
	MarkerPlus3  BonusMarker = "+++"
	MarkerPlus2  BonusMarker = "++"
	MarkerPlus1  BonusMarker = "+"
	MarkerNone   BonusMarker = ""
	MarkerMinus1 BonusMarker = "-"
	MarkerMinus2 BonusMarker = "--"
	MarkerMinus3 BonusMarker = "---"
)

// Value переводит отметку в число от +3 до -3.
func (b BonusMarker) Value() int {
	switch b {
	case MarkerPlus3:
		return 3
	case MarkerPlus2:
		return 2
	case MarkerPlus1:
		return 1
	case MarkerMinus1:
		return -1
	case MarkerMinus2:
		return -2
	case MarkerMinus3:
		return -3
	default:
		return 0
	}
}

func (b BonusMarker) IsValid() bool {
	switch b {
	case MarkerPlus3, MarkerPlus2, MarkerPlus1, MarkerNone, MarkerMinus1, MarkerMinus2, MarkerMinus3:
		return true
	}
	return false
}

// Settings - параметры пересчёта очков в деньги. Все денежные расчёты
// получают их явно, значения по умолчанию хранит SettingsService.
type Settings struct {
	PointRate  int       `json:"point_rate" db:"point_rate"`
	BonusValue int       `json:"bonus_value" db:"bonus_value"`
	ChipRate   int       `json:"chip_rate" db:"chip_rate"`
	BonusRule  BonusRule `json:"bonus_rule" db:"bonus_rule"`
}
