//go:build integration && !windows

package rod_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/emailscout/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	renderer := rod.NewRenderer()
	opened, err := renderer.Open(context.Background(), "")
	require.NoError(t, err)
	session, ok := opened.(*rod.Session)
	require.True(t, ok)

	pid := session.LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	// Signal 0 checks that the process exists without affecting it.
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)), "launcher process should be running before Close()")

	require.NoError(t, session.Close())

	time.Sleep(100 * time.Millisecond)

	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)), "launcher process should be terminated after Close()")
}
