package reconcile

import (
	"sync"
	"time"

	"tunehub-backend/internal/logger"
)

// AuthGuard absorbs transient identity-signal loss. Reconnects and token
// refreshes briefly drop the signal; treating every drop as a logout would
// destroy in-flight local state (forms, scroll position, pending uploads).
// A drop only becomes a logout if the signal stays gone for the whole grace
// window. A deliberate sign-out skips the window entirely.
type AuthGuard struct {
	mu          sync.Mutex
	grace       time.Duration
	present     bool
	signedOut   bool
	cancelTimer func() bool
	startTimer  func(d time.Duration, fn func()) func() bool
	onSignedOut func()
}

const DefaultGraceWindow = 5 * time.Second

// NewAuthGuard creates a guard that calls onSignedOut exactly once when the
// session ends, either by grace-window expiry or by deliberate sign-out.
func NewAuthGuard(grace time.Duration, onSignedOut func()) *AuthGuard {
	if grace <= 0 {
		grace = DefaultGraceWindow
	}
	return &AuthGuard{
		grace:       grace,
		onSignedOut: onSignedOut,
		startTimer: func(d time.Duration, fn func()) func() bool {
			return time.AfterFunc(d, fn).Stop
		},
	}
}

// SignalPresent records that the identity signal is live. If a grace window
// is pending, restoration cancels it and nothing observable happens.
func (g *AuthGuard) SignalPresent() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.signedOut {
		return
	}
	if g.cancelTimer != nil {
		g.cancelTimer()
		g.cancelTimer = nil
		logger.Debug("Identity signal restored within grace window")
	}
	g.present = true
}

// SignalLost starts the grace window, but only when the signal had been
// present before: a session that never authenticated has nothing to protect.
func (g *AuthGuard) SignalLost() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.signedOut || !g.present || g.cancelTimer != nil {
		return
	}
	g.present = false
	g.cancelTimer = g.startTimer(g.grace, g.expire)
	logger.Debug("Identity signal lost, grace window started", "grace", g.grace)
}

func (g *AuthGuard) expire() {
	g.mu.Lock()
	if g.signedOut || g.present {
		g.mu.Unlock()
		return
	}
	g.signedOut = true
	g.cancelTimer = nil
	cb := g.onSignedOut
	g.mu.Unlock()

	logger.Info("Grace window elapsed without identity recovery, signing out")
	if cb != nil {
		cb()
	}
}

// SignOut is the deliberate, user-initiated path: it bypasses the grace
// window and takes effect immediately.
func (g *AuthGuard) SignOut() {
	g.mu.Lock()
	if g.signedOut {
		g.mu.Unlock()
		return
	}
	g.signedOut = true
	g.present = false
	if g.cancelTimer != nil {
		g.cancelTimer()
		g.cancelTimer = nil
	}
	cb := g.onSignedOut
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// SignedOut reports whether the session has ended.
func (g *AuthGuard) SignedOut() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.signedOut
}
