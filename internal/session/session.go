// Package session carries per-invocation runtime state that the original
// tool kept in a process-global dictionary. A Session is created once per
// command invocation and passed through call chains on the context.
package session

import (
	"context"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/xoseperez/platformio/internal/envcfg"
	"github.com/xoseperez/platformio/internal/state"
)

// clientIDKey is the state document key holding the persisted client id.
const clientIDKey = "cid"

// Session holds invocation-scoped flags and the parsed environment.
type Session struct {
	// ForceOption mirrors a --force style flag that also suppresses
	// progress indicators.
	ForceOption bool

	// CallerID names the integration invoking the CLI, when any.
	CallerID string

	env envcfg.Env
}

// New creates a Session from the parsed environment.
func New(env envcfg.Env) *Session {
	return &Session{env: env}
}

type ctxKey struct{}

// WithContext attaches the session to ctx.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached to ctx, or a zero-value session
// when none was attached.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return New(envcfg.Env{})
}

// ProgressBarDisabled reports whether progress indicators should be
// suppressed: forced by the session, running under CI or without a
// terminal, or disabled via PLATFORMIO_DISABLE_PROGRESSBAR=true.
func (s *Session) ProgressBarDisabled() bool {
	if s.ForceOption || s.env.CI || s.env.ProgressbarDisabled() {
		return true
	}
	return !term.IsTerminal(int(os.Stderr.Fd()))
}

// ClientID returns the stable client identifier, minting and persisting one
// on first use. The id is a deterministic UUID derived from the cloud-IDE
// user id when present, else the hostname.
func (s *Session) ClientID(ctx context.Context) (string, error) {
	stored, err := state.GetItem(ctx, clientIDKey, nil)
	if err != nil {
		return "", err
	}
	if cid, ok := stored.(string); ok && cid != "" {
		return cid, nil
	}

	seed := s.env.C9UID
	if seed == "" {
		hostname, hostErr := os.Hostname()
		if hostErr != nil {
			hostname = "localhost"
		}
		seed = hostname
	}

	cid := uuid.NewMD5(uuid.NameSpaceOID, []byte(seed)).String()
	if err := state.SetItem(ctx, clientIDKey, cid); err != nil {
		return "", err
	}
	return cid, nil
}
