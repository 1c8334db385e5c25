package guard

import (
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// StateOf derives the guard state from the Auth Provider's current user.
func StateOf(user *crm.User) State {
	if user == nil {
		return Unauthenticated
	}
	return Authenticated
}

type Action int

const (
	Render Action = iota
	Redirect
)

type Decision struct {
	Action   Action
	Location string
}

func render() Decision { return Decision{Action: Render} }

func redirect(to string) Decision { return Decision{Action: Redirect, Location: to} }

func (d Decision) Redirects() bool { return d.Action == Redirect }

const (
	RootPath  = "/"
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// Guard decides, from authentication state alone, whether a page path renders
// or redirects. It never reads storage.
type Guard struct {
	public    map[string]bool
	protected []string
}

func New() *Guard {
	return &Guard{
		public: map[string]bool{
			LoginPath:          true,
			"/register":        true,
			"/forgot-password": true,
			"/reset-password":  true,
			"/logout":          true,
		},
		protected: []string{
			HomePath,
			"/clients",
			"/notes",
			"/projects",
			"/payments",
			"/settings",
		},
	}
}

// Decide returns what to do with a request for path.
//
//	/               -> /dashboard when authenticated, else /login
//	public page     -> render
//	protected page  -> render when authenticated, else /login
//	anything else   -> /
func (g *Guard) Decide(state State, path string) Decision {
	path = normalize(path)

	switch {
	case path == RootPath:
		if state == Authenticated {
			return redirect(HomePath)
		}
		return redirect(LoginPath)
	case g.public[path]:
		return render()
	case g.isProtected(path):
		if state == Authenticated {
			return render()
		}
		return redirect(LoginPath)
	default:
		return redirect(RootPath)
	}
}

// Protected reports whether path needs a signed in user.
func (g *Guard) Protected(path string) bool {
	return g.isProtected(normalize(path))
}

func (g *Guard) isProtected(path string) bool {
	for _, prefix := range g.protected {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	if path == "" {
		return RootPath
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
