package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/adapter/memory"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

//go:generate moq -out session_store_mock_test.go -pkg gate . sessionStore

const demoUser = `{"email":"demo@mirrorme.com","name":"Demo User","displayName":"Demo User","nickname":"Demo User"}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestGate wires the gate over an observable memory store.
func newTestGate(t *testing.T, cfg config.GateConfig) (*Service, *store.Observable) {
	t.Helper()
	obs := store.NewObservable(discardLogger(), memory.New(), nil, "test")
	return NewService(discardLogger(), obs, obs, store.NopTx{}, cfg), obs
}

func seed(t *testing.T, obs *store.Observable, pid uuid.UUID, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		if err := obs.Write(context.Background(), pid, k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	d := Initial()
	if d.State != domain.GateLoading || d.Authenticated || d.User != nil {
		t.Errorf("unexpected initial decision: %+v", d)
	}
}

func TestService_Decide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stored    map[string]string
		wantState domain.GateState
		wantAuth  bool
	}{
		{
			name:      "empty namespace",
			stored:    nil,
			wantState: domain.GateApp,
		},
		{
			name:      "user without survey flag",
			stored:    map[string]string{store.KeyUser: demoUser},
			wantState: domain.GateSurvey,
			wantAuth:  true,
		},
		{
			name:      "user with survey flag",
			stored:    map[string]string{store.KeyUser: demoUser, store.KeySurveyCompleted: "true"},
			wantState: domain.GateApp,
			wantAuth:  true,
		},
		{
			name:      "flag with other value is unset",
			stored:    map[string]string{store.KeyUser: demoUser, store.KeySurveyCompleted: "yes"},
			wantState: domain.GateSurvey,
			wantAuth:  true,
		},
		{
			name:      "malformed user",
			stored:    map[string]string{store.KeyUser: "{broken", store.KeySurveyCompleted: "true"},
			wantState: domain.GateApp,
		},
		{
			name:      "user without email",
			stored:    map[string]string{store.KeyUser: `{"name":"x"}`},
			wantState: domain.GateApp,
		},
		{
			name:      "flag without user",
			stored:    map[string]string{store.KeySurveyCompleted: "true"},
			wantState: domain.GateApp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, obs := newTestGate(t, config.GateConfig{})
			pid := uuid.New()
			seed(t, obs, pid, tt.stored)

			d, err := svc.Decide(context.Background(), pid)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.State != tt.wantState || d.Authenticated != tt.wantAuth {
				t.Errorf("got %s/%v, want %s/%v", d.State, d.Authenticated, tt.wantState, tt.wantAuth)
			}
			if tt.wantAuth && (d.User == nil || d.User.Email != "demo@mirrorme.com") {
				t.Errorf("expected decoded user, got %+v", d.User)
			}
			if !tt.wantAuth && d.User != nil {
				t.Errorf("expected no user, got %+v", d.User)
			}

			again, err := svc.Decide(context.Background(), pid)
			if err != nil {
				t.Fatalf("second Decide: %v", err)
			}
			if !again.Equal(d) {
				t.Errorf("Decide is not stable: %+v vs %+v", d, again)
			}
		})
	}
}

func TestService_Decide_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	st := &sessionStoreMock{
		ReadFunc: func(context.Context, uuid.UUID, string) (string, error) {
			return "", boom
		},
	}
	obs := store.NewObservable(discardLogger(), memory.New(), nil, "test")
	svc := NewService(discardLogger(), st, obs, store.NopTx{}, config.GateConfig{})

	_, err := svc.Decide(context.Background(), uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got: %v", err)
	}
}

func TestService_CompleteSurvey(t *testing.T) {
	t.Parallel()

	svc, obs := newTestGate(t, config.GateConfig{})
	pid := uuid.New()
	seed(t, obs, pid, map[string]string{store.KeyUser: demoUser})

	profile := domain.UserProfile{
		Nickname:           "  Kai ",
		PrimaryLanguage:    "Japanese",
		Nationality:        "Japanese",
		CulturalBackground: "Grew up in Osaka",
		EmpathyGoals:       domain.StringSet{"cultural", "communication"},
		Interests:          domain.StringSet{"Travel"},
	}

	d, err := svc.CompleteSurvey(context.Background(), pid, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != domain.GateApp || !d.Authenticated {
		t.Errorf("decision: got %+v", d)
	}

	ctx := context.Background()
	flag, err := obs.Read(ctx, pid, store.KeySurveyCompleted)
	if err != nil || flag != "true" {
		t.Errorf("survey flag: got %q, %v", flag, err)
	}

	rawProfile, err := obs.Read(ctx, pid, store.KeyUserProfile)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	stored, err := domain.ParseUserProfile(rawProfile)
	if err != nil {
		t.Fatalf("parse profile: %v", err)
	}
	if stored.Nickname != "  Kai " {
		t.Errorf("profile is stored as given, got nickname %q", stored.Nickname)
	}

	rawUser, err := obs.Read(ctx, pid, store.KeyUser)
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	user, err := domain.ParseUserRecord(rawUser)
	if err != nil {
		t.Fatalf("parse user: %v", err)
	}
	if user.Email != "demo@mirrorme.com" || user.Nickname != "Kai" || user.DisplayName != "Kai" ||
		user.Name != "Demo User" {
		t.Errorf("merged user: got %+v", user)
	}
	if user.PrimaryLanguage != "Japanese" || user.CulturalBackground != "Grew up in Osaka" {
		t.Errorf("merged user: got %+v", user)
	}

	after, err := svc.Decide(ctx, pid)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if after.State != domain.GateApp || !after.Authenticated {
		t.Errorf("decision after completion: got %+v", after)
	}
}

func TestService_CompleteSurvey_NotifiesAfterAllWrites(t *testing.T) {
	t.Parallel()

	svc, obs := newTestGate(t, config.GateConfig{})
	pid := uuid.New()
	seed(t, obs, pid, map[string]string{store.KeyUser: demoUser})

	var seen []domain.Decision
	unsubscribe := obs.Subscribe(pid, func(store.Change) {
		d, err := svc.Decide(context.Background(), pid)
		if err != nil {
			t.Errorf("Decide in subscriber: %v", err)
			return
		}
		seen = append(seen, d)
	})
	defer unsubscribe()

	if _, err := svc.CompleteSurvey(context.Background(), pid, domain.DefaultProfile()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	for i, d := range seen {
		if d.State != domain.GateApp {
			t.Errorf("notification %d observed intermediate state %s", i, d.State)
		}
	}
}

func TestService_CompleteSurvey_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	st := &sessionStoreMock{
		ReadFunc: func(context.Context, uuid.UUID, string) (string, error) {
			return "", domain.ErrNotFound
		},
		WriteFunc: func(_ context.Context, _ uuid.UUID, key, _ string) error {
			if key == store.KeySurveyCompleted {
				return boom
			}
			return nil
		},
	}
	obs := store.NewObservable(discardLogger(), memory.New(), nil, "test")
	svc := NewService(discardLogger(), st, obs, store.NopTx{}, config.GateConfig{})

	_, err := svc.CompleteSurvey(context.Background(), uuid.New(), domain.DefaultProfile())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got: %v", err)
	}
	if n := len(st.WriteCalls()); n != 2 {
		t.Errorf("expected to stop after failing write, got %d writes", n)
	}
}

func TestService_Watch(t *testing.T) {
	t.Parallel()

	svc, obs := newTestGate(t, config.GateConfig{})
	pid := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan domain.Decision, 16)
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, pid, func(d domain.Decision) { got <- d })
	}()

	expect := func(state domain.GateState, auth bool) {
		t.Helper()
		select {
		case d := <-got:
			if d.State != state || d.Authenticated != auth {
				t.Fatalf("got %s/%v, want %s/%v", d.State, d.Authenticated, state, auth)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s/%v", state, auth)
		}
	}

	expect(domain.GateApp, false)

	seed(t, obs, pid, map[string]string{store.KeyUser: demoUser})
	expect(domain.GateSurvey, true)

	if _, err := svc.CompleteSurvey(context.Background(), pid, domain.DefaultProfile()); err != nil {
		t.Fatalf("CompleteSurvey: %v", err)
	}
	expect(domain.GateApp, true)

	// Writing an identical value does not produce a new decision.
	if err := obs.Write(context.Background(), pid, store.KeySurveyCompleted, "true"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := obs.Delete(context.Background(), pid, store.KeyUser); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	expect(domain.GateApp, false)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestService_Watch_IgnoresOtherProfiles(t *testing.T) {
	t.Parallel()

	svc, obs := newTestGate(t, config.GateConfig{})
	pid := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan domain.Decision, 16)
	go func() { _ = svc.Watch(ctx, pid, func(d domain.Decision) { got <- d }) }()

	<-got // initial
	seed(t, obs, uuid.New(), map[string]string{store.KeyUser: demoUser})

	select {
	case d := <-got:
		t.Fatalf("unexpected decision for unrelated profile: %+v", d)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestService_Watch_Resync(t *testing.T) {
	t.Parallel()

	backend := memory.New()
	// The gate observes a store that never emits, so only the resync
	// ticker can pick up the change.
	silent := store.NewObservable(discardLogger(), backend, nil, "silent")
	svc := NewService(discardLogger(), backend, silent, store.NopTx{}, config.GateConfig{ResyncInterval: 10 * time.Millisecond})
	pid := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan domain.Decision, 16)
	go func() { _ = svc.Watch(ctx, pid, func(d domain.Decision) { got <- d }) }()

	<-got
	if err := backend.Write(context.Background(), pid, store.KeyUser, demoUser); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case d := <-got:
		if d.State != domain.GateSurvey {
			t.Errorf("got %s, want survey", d.State)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("resync did not pick up the change")
	}
}

func TestService_Watch_InitialError(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	st := &sessionStoreMock{
		ReadFunc: func(context.Context, uuid.UUID, string) (string, error) { return "", boom },
	}
	obs := store.NewObservable(discardLogger(), memory.New(), nil, "test")
	svc := NewService(discardLogger(), st, obs, store.NopTx{}, config.GateConfig{})

	err := svc.Watch(context.Background(), uuid.New(), func(domain.Decision) {
		t.Error("fn must not be called")
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
