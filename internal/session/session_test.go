package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xoseperez/platformio/internal/envcfg"
	"github.com/xoseperez/platformio/internal/state"
)

func TestContextRoundTrip(t *testing.T) {
	sess := New(envcfg.Env{})
	sess.CallerID = "vscode"

	ctx := WithContext(context.Background(), sess)
	assert.Same(t, sess, FromContext(ctx))

	// An unadorned context yields a usable zero-value session.
	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Empty(t, fallback.CallerID)
}

func TestProgressBarDisabled(t *testing.T) {
	t.Run("ForceOption", func(t *testing.T) {
		sess := New(envcfg.Env{})
		sess.ForceOption = true
		assert.True(t, sess.ProgressBarDisabled())
	})

	t.Run("CI", func(t *testing.T) {
		sess := New(envcfg.Env{CI: true})
		assert.True(t, sess.ProgressBarDisabled())
	})

	t.Run("EnvKnob", func(t *testing.T) {
		sess := New(envcfg.Env{DisableProgressbar: "true"})
		assert.True(t, sess.ProgressBarDisabled())
	})

	t.Run("NoTerminal", func(t *testing.T) {
		// Test binaries run without a tty on stderr, so the terminal
		// check alone disables the progress bar here.
		sess := New(envcfg.Env{})
		assert.True(t, sess.ProgressBarDisabled())
	})
}

func TestClientID(t *testing.T) {
	t.Setenv("PLATFORMIO_HOME_DIR", t.TempDir())
	ctx := context.Background()

	sess := New(envcfg.Env{C9UID: "cloud-user-1"})

	id1, err := sess.ClientID(ctx)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(id1)
	require.NoError(t, parseErr, "client id should be a UUID")

	id2, err := sess.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "client id must be stable across calls")

	stored, err := state.GetItem(ctx, "cid", nil)
	require.NoError(t, err)
	assert.Equal(t, id1, stored, "client id must be persisted")
}

func TestClientIDDeterministicSeed(t *testing.T) {
	ctx := context.Background()

	t.Setenv("PLATFORMIO_HOME_DIR", t.TempDir())
	first, err := New(envcfg.Env{C9UID: "same-seed"}).ClientID(ctx)
	require.NoError(t, err)

	t.Setenv("PLATFORMIO_HOME_DIR", t.TempDir())
	second, err := New(envcfg.Env{C9UID: "same-seed"}).ClientID(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed should derive the same id on a fresh state file")
}
