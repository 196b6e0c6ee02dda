package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every report. Tree dispatch and directive hooks
	// recover through it, so a listener panic surfaces here instead of in the
	// host. Replace it with SetHandler.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global handler. Nil restores a quiet
// LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report stamps err if needed and hands it to the global handler.
func Report(err *ReorderError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic stamps err if needed and hands it to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

func stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = time.Now()
	}
}

// Recover reports a panic in progress as a PanicError tagged with op.
//
//	defer errors.Recover("dom.Dispatch(drop)")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback reports a panic in progress and then passes the
// recovered value to callback.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

const pkgPath = "github.com/go-drift/reorder/pkg/errors"

// CaptureStack formats the calling goroutine's stack, one
// "function\n\tfile:line" entry per frame. Leading frames belonging to the
// runtime's panic machinery or to this package's recover helpers are
// dropped, so a trace taken while recovering starts at the code that
// panicked.
func CaptureStack() string {
	var pcs [48]uintptr
	n := runtime.Callers(1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	leading := true
	for {
		frame, more := frames.Next()
		if leading && internalFrame(frame.Function) {
			if !more {
				break
			}
			continue
		}
		leading = false
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

func internalFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	name, ok := strings.CutPrefix(fn, pkgPath+".")
	if !ok {
		return false
	}
	switch name {
	case "CaptureStack", "reportRecovered", "Recover", "RecoverWithCallback":
		return true
	}
	return false
}
