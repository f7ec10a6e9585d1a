package log

import "go.uber.org/zap"

// ZapLogger records events in memory and mirrors each one as a structured
// zap entry.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	event = l.LastEvent()

	fields := []zap.Field{
		zap.Int("seq", event.Seq),
		zap.Int("round", event.Round),
		zap.String("type", event.Type.String()),
		zap.String("player", PlayerName(event.Player)),
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	if event.Row != "" {
		fields = append(fields, zap.String("row", event.Row))
	}

	switch event.Type {
	case EventIllegalMove:
		l.z.Warn(event.Details, fields...)
	case EventDraw, EventShuffle:
		l.z.Debug(event.Details, fields...)
	default:
		l.z.Info(event.Details, fields...)
	}
}
