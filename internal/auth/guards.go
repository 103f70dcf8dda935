package auth

import (
	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/config"
)

// Navigation targets used by guard redirects.
const (
	PathHome = "/"
	PathAuth = "/auth"
)

// Policy selects the access rule for a gated navigation target.
type Policy int

const (
	// PolicyAuthenticatedOnly admits any authenticated session.
	PolicyAuthenticatedOnly Policy = iota
	// PolicyStrict admits only sessions holding an elevated role.
	PolicyStrict
	// PolicyAdminOnly admits only the admin role.
	PolicyAdminOnly
)

// GatedPolicy maps the configured guard policy onto the directory and
// announcement views.
func GatedPolicy(p config.GuardPolicy) Policy {
	if p == config.GuardPolicyAuthenticated {
		return PolicyAuthenticatedOnly
	}
	return PolicyStrict
}

// Decision is the outcome of a guard check.
type Decision struct {
	Allow      bool
	Pending    bool
	RedirectTo string
	Notice     string
}

// Decide evaluates a navigation attempt against the policy. While loading is
// true, or while an authenticated session's role is still being resolved,
// the decision is Pending; a guard must not redirect on incomplete state.
func Decide(st authstate.State, loading bool, policy Policy) Decision {
	if loading || (st.Authenticated && !st.Resolved) {
		return Decision{Pending: true}
	}

	if !st.Authenticated {
		return Decision{RedirectTo: PathAuth}
	}

	switch policy {
	case PolicyAuthenticatedOnly:
		return Decision{Allow: true}
	case PolicyStrict:
		if !st.IsDevotee() {
			return Decision{RedirectTo: PathHome}
		}
		return Decision{Allow: true}
	case PolicyAdminOnly:
		if !st.IsAdmin() {
			return Decision{RedirectTo: PathHome, Notice: "admin access required"}
		}
		return Decision{Allow: true}
	default:
		return Decision{RedirectTo: PathHome}
	}
}
