// Package router maps client paths to screens, applying the
// authentication redirects of the web client.
package router

import (
	"path"
	"strings"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// Screen identifies a client view.
type Screen string

const (
	ScreenLoading  Screen = "loading"
	ScreenSurvey   Screen = "survey"
	ScreenLanding  Screen = "landing"
	ScreenAuth     Screen = "auth"
	ScreenNotFound Screen = "not_found"

	ScreenOverview             Screen = "overview"
	ScreenEmpathyMirror        Screen = "empathy-mirror"
	ScreenPerspectiveSimulator Screen = "perspective-simulator"
	ScreenJournal              Screen = "journal"
	ScreenAIChat               Screen = "ai-chat"
	ScreenCommunity            Screen = "community"
	ScreenAnalytics            Screen = "analytics"
	ScreenSettings             Screen = "settings"
	ScreenCameraTest           Screen = "camera-test"
)

const (
	PathLanding   = "/"
	PathAuth      = "/auth"
	PathDashboard = "/dashboard"
)

var dashboardScreens = map[string]Screen{
	"":                      ScreenOverview,
	"empathy-mirror":        ScreenEmpathyMirror,
	"perspective-simulator": ScreenPerspectiveSimulator,
	"journal":               ScreenJournal,
	"ai-chat":               ScreenAIChat,
	"community":             ScreenCommunity,
	"analytics":             ScreenAnalytics,
	"settings":              ScreenSettings,
	"camera-test":           ScreenCameraTest,
}

// Resolution is the outcome of routing a path. When RedirectTo is set the
// client should navigate there; Screen is what the target renders.
type Resolution struct {
	Path       string `json:"path"`
	Screen     Screen `json:"screen"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// Resolve routes p for a client that is or is not authenticated.
func Resolve(p string, authenticated bool) Resolution {
	p = normalize(p)

	switch {
	case p == PathLanding:
		return Resolution{Path: p, Screen: ScreenLanding}

	case p == PathAuth:
		if authenticated {
			return Resolution{Path: p, Screen: ScreenOverview, RedirectTo: PathDashboard}
		}
		return Resolution{Path: p, Screen: ScreenAuth}

	case p == PathDashboard || strings.HasPrefix(p, PathDashboard+"/"):
		if !authenticated {
			return Resolution{Path: p, Screen: ScreenAuth, RedirectTo: PathAuth}
		}
		return Resolution{Path: p, Screen: dashboardScreen(p)}

	default:
		return Resolution{Path: p, Screen: ScreenNotFound}
	}
}

// ResolveDecision routes p under a gate decision. While loading or while
// the survey is shown, every path renders that view.
func ResolveDecision(p string, d domain.Decision) Resolution {
	switch d.State {
	case domain.GateLoading:
		return Resolution{Path: normalize(p), Screen: ScreenLoading}
	case domain.GateSurvey:
		return Resolution{Path: normalize(p), Screen: ScreenSurvey}
	default:
		return Resolve(p, d.Authenticated)
	}
}

// dashboardScreen maps the first segment below /dashboard. Unknown
// sub-paths fall back to the overview.
func dashboardScreen(p string) Screen {
	rest := strings.TrimPrefix(strings.TrimPrefix(p, PathDashboard), "/")
	seg, _, _ := strings.Cut(rest, "/")
	if s, ok := dashboardScreens[seg]; ok {
		return s
	}
	return ScreenOverview
}

func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
