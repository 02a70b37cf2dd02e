package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "bridge.stream",
		Kind: KindStream,
		Err:  fmt.Errorf("boom"),
	}
	assert.Equal(t, "bridge.stream [stream]: boom", err.Error())
}

func TestErrorWithComponent(t *testing.T) {
	err := &Error{
		Op:        "bridge.stream",
		Kind:      KindStream,
		Component: "Counter",
		Err:       fmt.Errorf("boom"),
	}
	assert.Contains(t, err.Error(), "component=Counter")
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Op: "bridge.own", Kind: KindMisuse, Err: ErrSessionSealed}
	assert.True(t, Is(err, ErrSessionSealed))

	var target *Error
	require.True(t, As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, KindMisuse, target.Kind)
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindSetup, "setup"},
		{KindStream, "stream"},
		{KindMisuse, "misuse"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
		{KindBuild, "build"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic"}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "teahost.Update"
	assert.Equal(t, "panic in teahost.Update: test panic", err.Error())
}

func TestSetupErrorString(t *testing.T) {
	err := &SetupError{Component: "Clock", Node: "n-1"}
	assert.Contains(t, err.Error(), "Clock (node n-1) did not emit any state")

	anonymous := &SetupError{Node: "n-2"}
	assert.Contains(t, anonymous.Error(), "component (node n-2)")
}

func TestBuildErrorString(t *testing.T) {
	assert.Equal(t, "panic in Foo.Build(): oops", (&BuildError{Widget: "Foo", Recovered: "oops"}).Error())
	assert.Equal(t, "error in Foo.Build(): bad", (&BuildError{Widget: "Foo", Err: fmt.Errorf("bad")}).Error())
	assert.Equal(t, "unknown error in Foo.Build()", (&BuildError{Widget: "Foo"}).Error())
}

type recordingHandler struct {
	errs   []*Error
	panics []*PanicError
	builds []*BuildError
}

func (h *recordingHandler) HandleError(err *Error)           { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *PanicError)      { h.panics = append(h.panics, err) }
func (h *recordingHandler) HandleBuildError(err *BuildError) { h.builds = append(h.builds, err) }

func TestReport_SetsTimestamp(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&Error{Op: "x", Kind: KindStream, Err: fmt.Errorf("y")})
	Report(nil)
	ReportBuildError(&BuildError{Widget: "W"})

	require.Len(t, h.errs, 1)
	assert.False(t, h.errs[0].Timestamp.IsZero())
	require.Len(t, h.builds, 1)
	assert.False(t, h.builds[0].Timestamp.IsZero())
}

func TestRecover(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { got = r })
		panic("kaboom")
	}()

	assert.Equal(t, "kaboom", got)
	require.Len(t, h.panics, 1)
	assert.Equal(t, "test.op", h.panics[0].Op)
	assert.NotEmpty(t, h.panics[0].StackTrace)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandleError(&Error{Op: "bridge.stream", Kind: KindStream, Component: "Clock", Node: "n-1", Err: fmt.Errorf("boom")})
	h.HandlePanic(&PanicError{Op: "teahost.Update", Value: "oops", StackTrace: "frame"})
	h.HandleBuildError(&BuildError{Widget: "W", Element: "E", Err: fmt.Errorf("bad")})
	h.HandleError(nil)

	out := buf.String()
	assert.Contains(t, out, "op=bridge.stream")
	assert.Contains(t, out, "kind=stream")
	assert.Contains(t, out, "component=Clock")
	assert.Contains(t, out, "node=n-1")
	assert.Contains(t, out, "value=oops")
	assert.Contains(t, out, "stack=frame")
	assert.Contains(t, out, "widget=W")
}
