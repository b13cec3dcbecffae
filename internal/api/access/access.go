// Package access holds the permission decision table. Decide is pure: no
// store, no context, just (actor, action, resource) in and allow/deny out, so
// the whole table is unit-testable in isolation.
package access

import "reviewhub/internal/api/models"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
	KindUser     Kind = "user"
)

// Resource identifies what is being acted on. OwnerID is the author's user id
// for reviews and comments, the subject's user id for user records, and empty
// for catalog resources.
type Resource struct {
	Kind    Kind
	OwnerID string
}

// Decide reports whether actor may perform action on res. A nil actor is an
// unauthenticated visitor. Rules are evaluated in precedence order, first
// match wins.
func Decide(actor *models.User, action Action, res Resource) bool {
	// Anonymous visitors read the catalog kinds, nothing else. Unknown kinds
	// deny.
	if actor == nil {
		if action != ActionRead {
			return false
		}
		switch res.Kind {
		case KindCategory, KindGenre, KindTitle, KindReview, KindComment:
			return true
		}
		return false
	}

	if actor.IsAdmin() {
		return true
	}

	switch res.Kind {
	case KindCategory, KindGenre, KindTitle:
		// Catalog writes are admin-only, handled above.
		return action == ActionRead

	case KindReview, KindComment:
		switch action {
		case ActionRead, ActionCreate:
			return true
		case ActionUpdate, ActionDelete:
			return actor.ID == res.OwnerID || actor.IsModerator()
		}
		return false

	case KindUser:
		// A user may read and update their own record; which fields are
		// writable to self is the user service's concern.
		if actor.ID != res.OwnerID {
			return false
		}
		return action == ActionRead || action == ActionUpdate
	}

	return false
}
