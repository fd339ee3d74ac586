package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/identity"
	"github.com/dscnitrourkela/project-nutella/pkg/logger"
)

// Manager orchestrates token verification and the session lifecycle. The
// verifier strategy and the development bypass key come from wiring, never
// from the environment.
type Manager struct {
	verifier  identity.Verifier
	devKey    string
	devKeyExp time.Duration

	now func() time.Time
	log *logrus.Entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithDevKey enables the development bypass: presenting key yields an admin
// session without consulting the verifier. An empty key disables the bypass.
func WithDevKey(key string, exp time.Duration) Option {
	return func(m *Manager) {
		m.devKey = key
		m.devKeyExp = exp
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(verifier identity.Verifier, opts ...Option) *Manager {
	m := &Manager{
		verifier: verifier,
		now:      time.Now,
		log:      logger.New("auth"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AuthenticateToken verifies token against the identity provider and returns
// its claims.
func (m *Manager) AuthenticateToken(ctx context.Context, token string) (*identity.Claims, error) {
	claims, err := m.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrAuthentication, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: verification yielded no claims", apperror.ErrAuthentication)
	}
	return claims, nil
}

// CheckSessionValid reports whether session is live for the presented token.
// The session must exist, carry a token and an expiry, the carried token must
// equal the presented one, and the expiry must not have passed. Absence of
// any one condition invalidates the session.
func (m *Manager) CheckSessionValid(session *Session, token string) bool {
	return !(session == nil ||
		session.Auth == nil ||
		session.Auth.JWT == "" ||
		session.Auth.Exp == 0 ||
		session.Auth.JWT != token ||
		session.Auth.Exp*1000 <= m.now().UnixMilli())
}

// StartSession verifies token, populates the session record and persists it.
func (m *Manager) StartSession(ctx context.Context, session *Session, token string) (*identity.Claims, error) {
	claims, err := m.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}

	session.Auth = &Auth{
		UID:    claims.UID,
		MDBID:  claims.MDBID,
		JWT:    token,
		Exp:    claims.Exp,
		Role:   role,
		Claims: claims,
	}

	if err := session.Save(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnexpected, err)
	}

	return claims, nil
}

// EndSession destroys a live session and reports whether one was destroyed.
// Destruction failure is logged, not raised.
func (m *Manager) EndSession(ctx context.Context, session *Session, token string) bool {
	if !m.CheckSessionValid(session, token) {
		return false
	}

	if err := session.Destroy(ctx); err != nil {
		m.log.Errorf("failed to destroy session %s: %v", session.ID, err)
	}
	return true
}

// GetUserAuthScope determines the effective authenticated principal for one
// request:
//  1. no token: anonymous, nil claims
//  2. live session for the token: its cached claims, no provider call
//  3. configured development key: synthesized admin session, no provider call
//  4. otherwise a fresh session via StartSession
func (m *Manager) GetUserAuthScope(ctx context.Context, session *Session, token string) (*identity.Claims, error) {
	if token == "" {
		return nil, nil
	}

	if m.CheckSessionValid(session, token) {
		return session.Auth.Claims, nil
	}

	if m.devKey != "" && token == m.devKey {
		return m.startDevSession(ctx, session)
	}

	claims, err := m.StartSession(ctx, session, token)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: no claims for verified token", apperror.ErrUnexpected)
	}

	return claims, nil
}

// HasPermissions reports whether the request's session is live and carries
// one of the required roles. It fails closed on any missing piece of context.
func (m *Manager) HasPermissions(rc *RequestContext, requiredRoles []string) bool {
	if rc == nil || rc.Token == "" || rc.Session == nil {
		return false
	}
	if !m.CheckSessionValid(rc.Session, rc.Token) {
		return false
	}

	for _, role := range requiredRoles {
		if rc.Session.Auth.Role == role {
			return true
		}
	}
	return false
}

// IsDevSession reports whether session was created through the development
// bypass.
func (m *Manager) IsDevSession(session *Session) bool {
	return m.devKey != "" && session != nil && session.Auth != nil && session.Auth.JWT == m.devKey
}

func (m *Manager) startDevSession(ctx context.Context, session *Session) (*identity.Claims, error) {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnexpected, err)
	}
	uid := "development-uid-" + hex.EncodeToString(suffix)

	claims := &identity.Claims{
		UID:  uid,
		Role: models.RoleAdmin,
		Exp:  m.now().Add(m.devKeyExp).Unix(),
	}

	session.Auth = &Auth{
		UID:    uid,
		JWT:    m.devKey,
		Exp:    claims.Exp,
		Role:   models.RoleAdmin,
		Claims: claims,
	}

	if err := session.Save(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnexpected, err)
	}

	m.log.Warnf("development session started for %s", uid)
	return claims, nil
}
