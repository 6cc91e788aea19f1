package log

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/poptart/internal/pubsub"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)
	return &buf
}

func TestWrite_FormatsFields(t *testing.T) {
	buf := capture(t)

	Debug(CatPopup, "showing popup", "view", "*popups.GreetingPopup", "async", false)

	out := buf.String()
	require.Contains(t, out, "[DEBUG] [popup] showing popup")
	require.Contains(t, out, "view=*popups.GreetingPopup")
	require.Contains(t, out, "async=false")
}

func TestWrite_OddFieldCount(t *testing.T) {
	buf := capture(t)

	Info(CatRegistry, "registered", "orphan")

	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestErrorErr_AppendsError(t *testing.T) {
	buf := capture(t)

	ErrorErr(CatPopup, "show failed", errors.New("boom"))
	ErrorErr(CatPopup, "show failed", nil)

	require.Contains(t, buf.String(), "error=boom")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestSetMinLevel_Filters(t *testing.T) {
	buf := capture(t)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Warn(CatUI, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [ui] shown")
}

func TestSetEnabled_False(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)

	Error(CatConfig, "nope")

	require.Empty(t, buf.String())
}

func TestNoLogger_NoPanic(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatPopup, "nobody listening")
		SetEnabled(true)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	capture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatTrace, "provider started")

	event, ok := l.Listen()().(pubsub.Event[string])
	require.True(t, ok)
	require.Contains(t, event.Payload, "provider started")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRecent_KeepsTail(t *testing.T) {
	capture(t)

	for i := range recentCap + 10 {
		Debug(CatUI, "tick", "n", i)
	}

	tail := Recent(2)
	require.Len(t, tail, 2)
	require.Contains(t, tail[1], fmt.Sprintf("n=%d", recentCap+9))
	require.Len(t, Recent(recentCap*2), recentCap)

	ClearRecent()
	require.Empty(t, Recent(10))
}

func TestRecent_NoLogger(t *testing.T) {
	Reset()
	require.Nil(t, Recent(5))
}

func TestEntryLevel(t *testing.T) {
	buf := capture(t)
	Warn(CatConfig, "slow reload")

	level, ok := EntryLevel(buf.String())
	require.True(t, ok)
	require.Equal(t, LevelWarn, level)

	_, ok = EntryLevel("plain text")
	require.False(t, ok)
}
