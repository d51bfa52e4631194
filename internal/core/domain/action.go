package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("admin access required")

// Action identifies a catalog operation subject to authorization.
type Action string

const (
	ActionCreate   Action = "create"
	ActionList     Action = "list"
	ActionSearch   Action = "search"
	ActionUpdate   Action = "update"
	ActionPurchase Action = "purchase"
	ActionRestock  Action = "restock"
	ActionDelete   Action = "delete"
)

// permission describes the access requirements for one action.
type permission struct {
	authenticated bool
	admin         bool
}

// permissions is the full access matrix. Keeping it in one table avoids
// scattering role checks across handlers and makes the matrix testable on
// its own.
var permissions = map[Action]permission{
	ActionCreate:   {},
	ActionList:     {},
	ActionSearch:   {},
	ActionUpdate:   {},
	ActionPurchase: {authenticated: true},
	ActionRestock:  {authenticated: true, admin: true},
	ActionDelete:   {authenticated: true, admin: true},
}

// Authorize reports whether actor may perform action. A nil actor is an
// anonymous caller. The unauthenticated check always runs before the admin
// check, so anonymous callers on admin actions get ErrUnauthenticated.
func Authorize(actor *Identity, action Action) error {
	p, ok := permissions[action]
	if !ok {
		return ErrForbidden
	}
	if (p.authenticated || p.admin) && actor == nil {
		return ErrUnauthenticated
	}
	if p.admin && !actor.IsAdmin {
		return ErrForbidden
	}
	return nil
}
