package feedback_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/clientconnect/feedback"
	"github.com/jrsteele09/clientconnect/sessions/memstore"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestToast_Lifecycle(t *testing.T) {
	toast := feedback.NewToast(0)
	require.Equal(t, feedback.DefaultToastTTL, toast.TTL)
	require.Equal(t, feedback.Idle, toast.Phase)

	toast.Error("content required", t0)
	require.True(t, toast.Visible())
	require.Equal(t, feedback.Error, toast.Kind)
	require.Equal(t, 3*time.Second, toast.Remaining(t0))

	toast.Tick(t0.Add(2 * time.Second))
	require.Equal(t, feedback.Showing, toast.Phase)
	require.Equal(t, time.Second, toast.Remaining(t0.Add(2*time.Second)))

	toast.Tick(t0.Add(3 * time.Second))
	require.Equal(t, feedback.Dismissing, toast.Phase)
	require.Equal(t, "content required", toast.Message, "message stays while dismissing")
	require.Zero(t, toast.Remaining(t0.Add(3*time.Second)))

	toast.Tick(t0.Add(4 * time.Second))
	require.Equal(t, feedback.Idle, toast.Phase)
	require.Empty(t, toast.Message)
}

func TestToast_ManualDismissAndRestart(t *testing.T) {
	toast := feedback.NewToast(time.Second)

	toast.Dismiss()
	require.Equal(t, feedback.Idle, toast.Phase, "dismissing an idle toast is a no-op")

	toast.Success("Client added successfully!", t0)
	toast.Dismiss()
	require.Equal(t, feedback.Dismissing, toast.Phase)

	toast.Success("Client deleted successfully!", t0.Add(500*time.Millisecond))
	require.Equal(t, feedback.Showing, toast.Phase)
	toast.Tick(t0.Add(1200 * time.Millisecond))
	require.Equal(t, feedback.Showing, toast.Phase, "showing again restarts the timer")

	toast.Show("", feedback.Info, t0)
	require.Equal(t, "Client deleted successfully!", toast.Message, "empty messages are ignored")
}

func TestConfirm(t *testing.T) {
	var c feedback.Confirm

	_, ok := c.Take()
	require.False(t, ok, "nothing to confirm")

	c.Request(4)
	require.True(t, c.Open())
	id, ok := c.Pending()
	require.True(t, ok)
	require.Equal(t, int64(4), id)

	c.Cancel()
	require.False(t, c.Open())
	_, ok = c.Take()
	require.False(t, ok)

	c.Request(4)
	c.Request(9)
	id, ok = c.Take()
	require.True(t, ok)
	require.Equal(t, int64(9), id)
	require.False(t, c.Open())
}

func TestFlash_SurvivesOneHop(t *testing.T) {
	ctx := context.Background()
	storage := memstore.New().Scope("browser")

	require.NoError(t, feedback.SaveFlash(ctx, storage, "Your session has expired. Please log in again.", feedback.Error))

	toast := feedback.NewToast(0)
	require.True(t, feedback.TakeFlash(ctx, storage, &toast, t0))
	require.True(t, toast.Visible())
	require.Equal(t, "Your session has expired. Please log in again.", toast.Message)

	again := feedback.NewToast(0)
	require.False(t, feedback.TakeFlash(ctx, storage, &again, t0), "flashes are consumed")
	require.False(t, again.Visible())

	require.NoError(t, feedback.SaveFlash(ctx, storage, "", feedback.Info))
	require.False(t, feedback.TakeFlash(ctx, storage, &again, t0))
}
