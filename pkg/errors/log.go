package errors

import (
	"github.com/go-drift/reorder/pkg/logging"
)

// LogHandler is an ErrorHandler that writes to the shared zerolog logger.
//
// Configuration errors are expected in normal operation (a list row rendered
// without options, a handle that is not rendered yet), so they are logged at
// debug level. Recovered panics are logged as errors.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a ReorderError.
func (h *LogHandler) HandleError(err *ReorderError) {
	if err == nil {
		return
	}
	log := logging.For("errors")
	ev := log.Debug()
	if err.Kind == KindDispatch || err.Kind == KindUnknown {
		ev = log.Warn()
	}
	ev = ev.Str("op", err.Op).Stringer("kind", err.Kind).Err(err.Err)
	if err.Node != "" {
		ev = ev.Str("node", err.Node)
	}
	ev.Msg("reorder error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	log := logging.For("errors")
	ev := log.Error().Str("op", err.Op).Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
