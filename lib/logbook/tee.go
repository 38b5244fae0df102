package logbook

import "github.com/ValentinKolb/jDB/lib/store"

// Tee returns a logger forwarding every record to all given loggers.
// nil loggers are ignored.
func Tee(loggers ...store.ILogger) store.ILogger {
	t := make(tee, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			t = append(t, l)
		}
	}
	return t
}

type tee []store.ILogger

func (t tee) Record(level store.LogLevel, msg string) {
	for _, l := range t {
		l.Record(level, msg)
	}
}

// Discard is a logger that drops every record.
var Discard store.ILogger = discard{}

type discard struct{}

func (discard) Record(store.LogLevel, string) {}
