package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- MultiLogger: fans events out to several loggers ---

type MultiLogger struct {
	loggers []EventLogger
}

// Multi returns a logger that forwards every event to each of loggers.
// Events() reports the first logger's history.
func Multi(loggers ...EventLogger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Log(event GameEvent) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

func (m *MultiLogger) Events() []GameEvent {
	if len(m.loggers) == 0 {
		return nil
	}
	return m.loggers[0].Events()
}

// --- Formatting ---

// PlayerName returns "Human" or "AI" for display.
func PlayerName(p int) string {
	switch p {
	case 0:
		return "Human"
	case 1:
		return "AI"
	default:
		return "-"
	}
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("R%-2d | %s", e.Round, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchEvent(humanDeck, aiDeck int) GameEvent {
	return GameEvent{
		Round:   1,
		Player:  -1,
		Type:    EventNewMatch,
		Details: fmt.Sprintf("=== New match (Human deck %d cards, AI deck %d cards) ===", humanDeck, aiDeck),
	}
}

func NewRoundStartEvent(round int, first int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  first,
		Type:    EventRoundStart,
		Details: fmt.Sprintf("=== Round %d (%s leads) ===", round, PlayerName(first)),
	}
}

func NewDrawEvent(round int, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
	}
}

func NewShuffleEvent(round int, player int, size int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck (%d cards)", PlayerName(player), size),
	}
}

func NewZeroPowerFilteredEvent(round int, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventZeroPowerFiltered,
		Card:    cardName,
		Details: fmt.Sprintf("%s is removed from %s's deck (zero-power unit)", cardName, PlayerName(player)),
	}
}

func NewRankSynthesizedEvent(round int, player int, cardName string, row string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventRankSynthesized,
		Card:    cardName,
		Row:     row,
		Details: fmt.Sprintf("%s's deck gains a %s copy of %s", PlayerName(player), row, cardName),
	}
}

func NewPlayUnitEvent(round int, player int, cardName string, power int, row string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPlayUnit,
		Card:    cardName,
		Row:     row,
		Details: fmt.Sprintf("%s plays %s (%d) to the %s row", PlayerName(player), cardName, power, row),
	}
}

func NewPlaySpecialEvent(round int, player int, cardName string, effect string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPlaySpecial,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays special %s (%s)", PlayerName(player), cardName, effect),
	}
}

func NewPlayWeatherEvent(round int, player int, cardName string, row string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPlayWeather,
		Card:    cardName,
		Row:     row,
		Details: fmt.Sprintf("%s plays %s: the %s row is under weather", PlayerName(player), cardName, row),
	}
}

func NewWeatherClearedEvent(round int, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventWeatherCleared,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s: all weather is cleared", PlayerName(player), cardName),
	}
}

func NewMedicReviveEvent(round int, player int, medic string, revived string, row string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventMedicRevive,
		Card:    revived,
		Row:     row,
		Details: fmt.Sprintf("%s revives %s to the %s row", medic, revived, row),
	}
}

func NewScorchDestroyEvent(round int, owner int, cardName string, power int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  owner,
		Type:    EventScorchDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s (%d) is scorched", PlayerName(owner), cardName, power),
	}
}

func NewSendToDiscardEvent(round int, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventSendToDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s is sent to %s's discard pile (%s)", cardName, PlayerName(player), reason),
	}
}

func NewPassEvent(round int, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passes", PlayerName(player)),
	}
}

func NewRoundEndEvent(round int, humanScore, aiScore int, winner int) GameEvent {
	result := "tie"
	if winner >= 0 {
		result = PlayerName(winner) + " wins the round"
	}
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventRoundEnd,
		Details: fmt.Sprintf("Round %d ends %d-%d (%s)", round, humanScore, aiScore, result),
	}
}

func NewGemLostEvent(round int, player int, remaining int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventGemLost,
		Details: fmt.Sprintf("%s loses a gem (%d left)", PlayerName(player), remaining),
	}
}

func NewGameOverEvent(round int, winner int, reason string) GameEvent {
	details := "Match drawn"
	if winner >= 0 {
		details = PlayerName(winner) + " wins the match"
	}
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventGameOver,
		Details: fmt.Sprintf("%s! (%s)", details, reason),
	}
}

func NewIllegalMoveEvent(round int, player int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventIllegalMove,
		Details: fmt.Sprintf("%s: illegal move (%s)", PlayerName(player), reason),
	}
}
