package usecase

import "herald-hub/internal/domain"

// Decision is the outcome of a route-guard check. It is computed fresh
// on every request and never stored.
type Decision int

const (
	// DecisionAllow renders the guarded subtree.
	DecisionAllow Decision = iota
	// DecisionRedirectToLogin means no session is present.
	DecisionRedirectToLogin
	// DecisionRedirectToUnauthorized means the session's role is not in
	// the required set.
	DecisionRedirectToUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	case DecisionRedirectToUnauthorized:
		return "redirect_to_unauthorized"
	default:
		return "unknown"
	}
}

// Guard decides whether user may enter a subtree requiring one of the
// given roles. An empty required set admits any authenticated user.
func Guard(required []domain.Role, user *domain.User) Decision {
	if user == nil {
		return DecisionRedirectToLogin
	}
	if len(required) == 0 {
		return DecisionAllow
	}
	for _, role := range required {
		if user.Role == role {
			return DecisionAllow
		}
	}
	return DecisionRedirectToUnauthorized
}
