package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/identity"
)

type fakeVerifier struct {
	claims *identity.Claims
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*identity.Claims, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCheckSessionValid(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager(&fakeVerifier{}, WithClock(fixedClock(now)))

	live := &Auth{JWT: "token-a", Exp: now.Add(time.Hour).Unix(), Role: models.RoleUser}

	tests := []struct {
		name    string
		session *Session
		token   string
		want    bool
	}{
		{
			name:    "valid session",
			session: &Session{ID: "s1", Auth: live},
			token:   "token-a",
			want:    true,
		},
		{
			name:    "nil session",
			session: nil,
			token:   "token-a",
			want:    false,
		},
		{
			name:    "no auth payload",
			session: &Session{ID: "s1"},
			token:   "token-a",
			want:    false,
		},
		{
			name:    "no stored token",
			session: &Session{ID: "s1", Auth: &Auth{Exp: now.Add(time.Hour).Unix()}},
			token:   "token-a",
			want:    false,
		},
		{
			name:    "no expiry",
			session: &Session{ID: "s1", Auth: &Auth{JWT: "token-a"}},
			token:   "token-a",
			want:    false,
		},
		{
			name:    "token mismatch",
			session: &Session{ID: "s1", Auth: live},
			token:   "token-b",
			want:    false,
		},
		{
			name:    "expired",
			session: &Session{ID: "s1", Auth: &Auth{JWT: "token-a", Exp: now.Add(-time.Second).Unix()}},
			token:   "token-a",
			want:    false,
		},
		{
			name:    "expiry exactly now",
			session: &Session{ID: "s1", Auth: &Auth{JWT: "token-a", Exp: now.Unix()}},
			token:   "token-a",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manager.CheckSessionValid(tt.session, tt.token); got != tt.want {
				t.Errorf("CheckSessionValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartSession(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)

	t.Run("populates and persists the session", func(t *testing.T) {
		verifier := &fakeVerifier{claims: &identity.Claims{
			UID:  "firebase-uid",
			Role: models.RoleAdmin,
			Exp:  now.Add(time.Hour).Unix(),
		}}
		manager := NewManager(verifier, WithClock(fixedClock(now)))

		session, _ := store.Get(context.Background(), "s1")
		claims, err := manager.StartSession(context.Background(), session, "token-a")
		if err != nil {
			t.Fatalf("StartSession() error = %v", err)
		}
		if claims.UID != "firebase-uid" {
			t.Errorf("claims.UID = %q", claims.UID)
		}

		reloaded, _ := store.Get(context.Background(), "s1")
		if reloaded.Auth == nil || reloaded.Auth.JWT != "token-a" {
			t.Fatalf("session not persisted: %+v", reloaded.Auth)
		}
		if reloaded.Auth.Role != models.RoleAdmin {
			t.Errorf("role = %q, want admin", reloaded.Auth.Role)
		}
	})

	t.Run("defaults the role to user", func(t *testing.T) {
		verifier := &fakeVerifier{claims: &identity.Claims{
			UID: "firebase-uid",
			Exp: now.Add(time.Hour).Unix(),
		}}
		manager := NewManager(verifier, WithClock(fixedClock(now)))

		session, _ := store.Get(context.Background(), "s2")
		if _, err := manager.StartSession(context.Background(), session, "token-a"); err != nil {
			t.Fatalf("StartSession() error = %v", err)
		}
		if session.Auth.Role != models.RoleUser {
			t.Errorf("role = %q, want user", session.Auth.Role)
		}
	})

	t.Run("verifier rejection is an authentication error", func(t *testing.T) {
		verifier := &fakeVerifier{err: errors.New("revoked")}
		manager := NewManager(verifier, WithClock(fixedClock(now)))

		session, _ := store.Get(context.Background(), "s3")
		_, err := manager.StartSession(context.Background(), session, "token-a")
		if !errors.Is(err, apperror.ErrAuthentication) {
			t.Fatalf("error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("nil claims is an authentication error", func(t *testing.T) {
		manager := NewManager(&fakeVerifier{}, WithClock(fixedClock(now)))

		session, _ := store.Get(context.Background(), "s4")
		_, err := manager.StartSession(context.Background(), session, "token-a")
		if !errors.Is(err, apperror.ErrAuthentication) {
			t.Fatalf("error = %v, want ErrAuthentication", err)
		}
	})
}

func TestGetUserAuthScope(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no token is anonymous", func(t *testing.T) {
		verifier := &fakeVerifier{}
		manager := NewManager(verifier, WithClock(fixedClock(now)))
		store := NewMemoryStore(time.Hour)

		session, _ := store.Get(context.Background(), "s1")
		claims, err := manager.GetUserAuthScope(context.Background(), session, "")
		if err != nil {
			t.Fatalf("GetUserAuthScope() error = %v", err)
		}
		if claims != nil {
			t.Errorf("claims = %+v, want nil", claims)
		}
		if verifier.calls != 0 {
			t.Errorf("verifier calls = %d, want 0", verifier.calls)
		}
	})

	t.Run("second call with live session skips the verifier", func(t *testing.T) {
		verifier := &fakeVerifier{claims: &identity.Claims{
			UID: "firebase-uid",
			Exp: now.Add(time.Hour).Unix(),
		}}
		manager := NewManager(verifier, WithClock(fixedClock(now)))
		store := NewMemoryStore(time.Hour)

		session, _ := store.Get(context.Background(), "s1")
		first, err := manager.GetUserAuthScope(context.Background(), session, "token-a")
		if err != nil {
			t.Fatalf("first call error = %v", err)
		}

		reloaded, _ := store.Get(context.Background(), "s1")
		second, err := manager.GetUserAuthScope(context.Background(), reloaded, "token-a")
		if err != nil {
			t.Fatalf("second call error = %v", err)
		}

		if verifier.calls != 1 {
			t.Errorf("verifier calls = %d, want 1", verifier.calls)
		}
		if first.UID != second.UID || first.Exp != second.Exp {
			t.Errorf("claims differ: %+v vs %+v", first, second)
		}
	})

	t.Run("dev key synthesizes an admin session without the verifier", func(t *testing.T) {
		verifier := &fakeVerifier{}
		manager := NewManager(verifier,
			WithClock(fixedClock(now)),
			WithDevKey("dev-secret", time.Hour),
		)
		store := NewMemoryStore(time.Hour)

		session, _ := store.Get(context.Background(), "s1")
		claims, err := manager.GetUserAuthScope(context.Background(), session, "dev-secret")
		if err != nil {
			t.Fatalf("GetUserAuthScope() error = %v", err)
		}

		if verifier.calls != 0 {
			t.Errorf("verifier calls = %d, want 0", verifier.calls)
		}
		if !strings.HasPrefix(claims.UID, "development-uid-") {
			t.Errorf("uid = %q, want development-uid-*", claims.UID)
		}
		if claims.Role != models.RoleAdmin {
			t.Errorf("role = %q, want admin", claims.Role)
		}
		if !manager.IsDevSession(session) {
			t.Error("IsDevSession() = false, want true")
		}
	})

	t.Run("unknown token without dev key goes through the verifier", func(t *testing.T) {
		verifier := &fakeVerifier{claims: &identity.Claims{
			UID: "firebase-uid",
			Exp: now.Add(time.Hour).Unix(),
		}}
		manager := NewManager(verifier, WithClock(fixedClock(now)))
		store := NewMemoryStore(time.Hour)

		session, _ := store.Get(context.Background(), "s1")
		claims, err := manager.GetUserAuthScope(context.Background(), session, "dev-secret")
		if err != nil {
			t.Fatalf("GetUserAuthScope() error = %v", err)
		}
		if verifier.calls != 1 {
			t.Errorf("verifier calls = %d, want 1", verifier.calls)
		}
		if claims.UID != "firebase-uid" {
			t.Errorf("uid = %q", claims.UID)
		}
	})
}

func TestEndSession(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager(&fakeVerifier{}, WithClock(fixedClock(now)))
	store := NewMemoryStore(time.Hour)

	t.Run("destroys a live session", func(t *testing.T) {
		session, _ := store.Get(context.Background(), "s1")
		session.Auth = &Auth{JWT: "token-a", Exp: now.Add(time.Hour).Unix(), Role: models.RoleUser}
		if err := session.Save(context.Background()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if !manager.EndSession(context.Background(), session, "token-a") {
			t.Fatal("EndSession() = false, want true")
		}

		reloaded, _ := store.Get(context.Background(), "s1")
		if reloaded.Auth != nil && reloaded.Auth.JWT != "" {
			t.Errorf("session survived destruction: %+v", reloaded.Auth)
		}
	})

	t.Run("invalid session is a no-op", func(t *testing.T) {
		session, _ := store.Get(context.Background(), "s2")
		if manager.EndSession(context.Background(), session, "token-a") {
			t.Fatal("EndSession() = true, want false")
		}
	})
}

func TestHasPermissions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager(&fakeVerifier{}, WithClock(fixedClock(now)))

	liveUser := &Session{ID: "s1", Auth: &Auth{
		JWT: "token-a", Exp: now.Add(time.Hour).Unix(), Role: models.RoleUser,
	}}
	liveAdmin := &Session{ID: "s2", Auth: &Auth{
		JWT: "token-a", Exp: now.Add(time.Hour).Unix(), Role: models.RoleAdmin,
	}}
	expired := &Session{ID: "s3", Auth: &Auth{
		JWT: "token-a", Exp: now.Add(-time.Hour).Unix(), Role: models.RoleAdmin,
	}}

	tests := []struct {
		name  string
		rc    *RequestContext
		roles []string
		want  bool
	}{
		{
			name:  "nil context",
			rc:    nil,
			roles: []string{models.RoleUser},
			want:  false,
		},
		{
			name:  "no token",
			rc:    &RequestContext{Session: liveUser},
			roles: []string{models.RoleUser},
			want:  false,
		},
		{
			name:  "no session",
			rc:    &RequestContext{Token: "token-a"},
			roles: []string{models.RoleUser},
			want:  false,
		},
		{
			name:  "expired session",
			rc:    &RequestContext{Token: "token-a", Session: expired},
			roles: []string{models.RoleAdmin},
			want:  false,
		},
		{
			name:  "role member",
			rc:    &RequestContext{Token: "token-a", Session: liveUser},
			roles: []string{models.RoleUser, models.RoleAdmin},
			want:  true,
		},
		{
			name:  "admin not implicitly granted user operations",
			rc:    &RequestContext{Token: "token-a", Session: liveAdmin},
			roles: []string{models.RoleUser},
			want:  false,
		},
		{
			name:  "admin in required set",
			rc:    &RequestContext{Token: "token-a", Session: liveAdmin},
			roles: []string{models.RoleAdmin},
			want:  true,
		},
		{
			name:  "empty required set",
			rc:    &RequestContext{Token: "token-a", Session: liveUser},
			roles: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manager.HasPermissions(tt.rc, tt.roles); got != tt.want {
				t.Errorf("HasPermissions() = %v, want %v", got, tt.want)
			}
		})
	}
}
