package popup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/poptart/internal/pubsub"
)

func TestObservable_ZeroValueNotifies(t *testing.T) {
	vm := &greetingViewModel{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := vm.Subscribe(ctx)
	vm.SetArguments(Arguments{"name": "Ada"})

	select {
	case ev := <-ch:
		require.Equal(t, pubsub.ChangedEvent, ev.Type)
		require.Equal(t, PropertyChange{Name: "Name", Value: "Ada"}, ev.Payload)
	case <-time.After(time.Second):
		require.Fail(t, "no change notification")
	}
}

func TestObservable_NotifyWithoutSubscribers(t *testing.T) {
	var o Observable
	require.NotPanics(t, func() { o.NotifyChanged("x", 1) })
}

func TestArguments_Accessors(t *testing.T) {
	args := Arguments{
		"name":    "Ada",
		"count":   "3",
		"enabled": "true",
		"tags":    []string{"a", "b"},
		"age":     36,
	}

	require.True(t, args.Has("name"))
	require.False(t, args.Has("missing"))
	require.Equal(t, "Ada", args.String("name"))
	require.Equal(t, "36", args.String("age"))
	require.Equal(t, "", args.String("missing"))

	n, err := args.Int("count")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	_, err = args.Int("name")
	require.Error(t, err)

	require.True(t, args.Bool("enabled"))
	require.False(t, args.Bool("missing"))
	require.Equal(t, []string{"a", "b"}, args.StringSlice("tags"))
}
