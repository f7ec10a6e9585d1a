package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewMatch EventType = iota
	EventRoundStart
	EventDraw
	EventShuffle
	EventZeroPowerFiltered
	EventRankSynthesized
	EventPlayUnit
	EventPlaySpecial
	EventPlayWeather
	EventWeatherCleared
	EventMedicRevive
	EventScorchDestroy
	EventSendToDiscard
	EventPass
	EventRoundEnd
	EventGemLost
	EventGameOver
	EventIllegalMove
)

func (e EventType) String() string {
	switch e {
	case EventNewMatch:
		return "NewMatch"
	case EventRoundStart:
		return "RoundStart"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventZeroPowerFiltered:
		return "ZeroPowerFiltered"
	case EventRankSynthesized:
		return "RankSynthesized"
	case EventPlayUnit:
		return "PlayUnit"
	case EventPlaySpecial:
		return "PlaySpecial"
	case EventPlayWeather:
		return "PlayWeather"
	case EventWeatherCleared:
		return "WeatherCleared"
	case EventMedicRevive:
		return "MedicRevive"
	case EventScorchDestroy:
		return "ScorchDestroy"
	case EventSendToDiscard:
		return "SendToDiscard"
	case EventPass:
		return "Pass"
	case EventRoundEnd:
		return "RoundEnd"
	case EventGemLost:
		return "GemLost"
	case EventGameOver:
		return "GameOver"
	case EventIllegalMove:
		return "IllegalMove"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Player  int       // acting side (0 = human, 1 = AI), -1 when not player-specific
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Row     string    // board row (if applicable)
	Details string    // human-readable detail string
}
