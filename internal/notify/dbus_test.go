//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSessionBus(t *testing.T) {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
}

func TestDBusNotifier_ReplacesExisting(t *testing.T) {
	requireSessionBus(t)

	n, err := New()
	require.NoError(t, err)

	first, err := n.Notify(Notification{Title: "HiFi Test", Body: "first", Timeout: 1000, Urgency: UrgencyLow})
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := n.Notify(Notification{Title: "HiFi Test", Body: "second", Timeout: 1000, ReplacesID: first})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, n.Close(second))
}

func TestNew_WithoutSessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
		t.Skip("the shared session connection may already be open")
	}
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/hifi-bus")

	n, err := New()
	assert.Error(t, err)
	require.NotNil(t, n)

	id, err := n.Notify(Notification{Title: "ignored"})
	assert.NoError(t, err)
	assert.Zero(t, id)
}
