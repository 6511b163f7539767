package router

import (
	"testing"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		path          string
		authenticated bool
		wantScreen    Screen
		wantRedirect  string
	}{
		{name: "landing anonymous", path: "/", wantScreen: ScreenLanding},
		{name: "landing signed in", path: "/", authenticated: true, wantScreen: ScreenLanding},
		{name: "empty path", path: "", wantScreen: ScreenLanding},
		{name: "auth anonymous", path: "/auth", wantScreen: ScreenAuth},
		{name: "auth signed in", path: "/auth", authenticated: true, wantScreen: ScreenOverview, wantRedirect: "/dashboard"},
		{name: "dashboard anonymous", path: "/dashboard", wantScreen: ScreenAuth, wantRedirect: "/auth"},
		{name: "dashboard sub-path anonymous", path: "/dashboard/journal", wantScreen: ScreenAuth, wantRedirect: "/auth"},
		{name: "dashboard root", path: "/dashboard", authenticated: true, wantScreen: ScreenOverview},
		{name: "dashboard trailing slash", path: "/dashboard/", authenticated: true, wantScreen: ScreenOverview},
		{name: "empathy mirror", path: "/dashboard/empathy-mirror", authenticated: true, wantScreen: ScreenEmpathyMirror},
		{name: "perspective simulator", path: "/dashboard/perspective-simulator", authenticated: true, wantScreen: ScreenPerspectiveSimulator},
		{name: "journal", path: "/dashboard/journal", authenticated: true, wantScreen: ScreenJournal},
		{name: "ai chat", path: "/dashboard/ai-chat", authenticated: true, wantScreen: ScreenAIChat},
		{name: "community", path: "/dashboard/community", authenticated: true, wantScreen: ScreenCommunity},
		{name: "analytics", path: "/dashboard/analytics", authenticated: true, wantScreen: ScreenAnalytics},
		{name: "settings with query", path: "/dashboard/settings?tab=privacy", authenticated: true, wantScreen: ScreenSettings},
		{name: "unknown dashboard page", path: "/dashboard/nope", authenticated: true, wantScreen: ScreenOverview},
		{name: "dashboard lookalike", path: "/dashboards", authenticated: true, wantScreen: ScreenNotFound},
		{name: "unknown path", path: "/pricing", wantScreen: ScreenNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Resolve(tt.path, tt.authenticated)
			if got.Screen != tt.wantScreen {
				t.Errorf("screen: got %q, want %q", got.Screen, tt.wantScreen)
			}
			if got.RedirectTo != tt.wantRedirect {
				t.Errorf("redirect: got %q, want %q", got.RedirectTo, tt.wantRedirect)
			}
		})
	}
}

func TestResolveDecision(t *testing.T) {
	t.Parallel()

	survey := domain.Decision{State: domain.GateSurvey, Authenticated: true}
	for _, p := range []string{"/", "/auth", "/dashboard/journal", "/missing"} {
		if got := ResolveDecision(p, survey); got.Screen != ScreenSurvey || got.RedirectTo != "" {
			t.Errorf("survey decision for %q: got %+v", p, got)
		}
	}

	if got := ResolveDecision("/dashboard", domain.Decision{State: domain.GateLoading}); got.Screen != ScreenLoading {
		t.Errorf("loading decision: got %+v", got)
	}

	app := domain.Decision{State: domain.GateApp, Authenticated: true}
	if got := ResolveDecision("/auth", app); got.RedirectTo != "/dashboard" {
		t.Errorf("authenticated app decision: got %+v", got)
	}

	anon := domain.Decision{State: domain.GateApp}
	if got := ResolveDecision("/dashboard/analytics", anon); got.RedirectTo != "/auth" {
		t.Errorf("anonymous app decision: got %+v", got)
	}
}
