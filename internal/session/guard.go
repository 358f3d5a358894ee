package session

import "tanimarket/internal/models"

// Route targets used by the guard
const (
	RouteLogin       = "/login"
	RouteAdminHome   = "/admin"
	RoutePetaniHome  = "/petani"
	RoutePembeliHome = "/"
)

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed  bool
	Redirect string
}

// RoleHome returns the landing route for a role
func RoleHome(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return RouteAdminHome
	case models.RolePetani:
		return RoutePetaniHome
	default:
		return RoutePembeliHome
	}
}

// Authorize decides whether user may enter a view restricted to the given
// roles. Anonymous users are sent to login; a wrong role is sent to its
// own home. An empty required list only demands a login.
func Authorize(user *models.User, required ...models.Role) Decision {
	if user == nil {
		return Decision{Redirect: RouteLogin}
	}

	if len(required) == 0 {
		return Decision{Allowed: true}
	}

	for _, role := range required {
		if user.Role == role {
			return Decision{Allowed: true}
		}
	}

	return Decision{Redirect: RoleHome(user.Role)}
}
