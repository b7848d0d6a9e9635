/*
Package authz is the authorization guard: a pure predicate over
(actor, resource, action). It never mutates state and never performs I/O.

The guard judges role and ownership only. Whether the action is defined for
the entity's current lifecycle state is the aggregate's own concern, so a
denied transition stays distinguishable from a denied actor.
*/
package authz

import "marketplace/domain/shared"

// Action is a requested operation on a listing or an order.
type Action string

const (
	// Moderation actions, administrator only.
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"

	// Listing actions, owner only.
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionDeactivate Action = "deactivate"
	ActionReactivate Action = "reactivate"

	// Order actions.
	ActionCreateOrder Action = "createOrder"
	ActionFinish      Action = "finish"
	ActionCancel      Action = "cancel"
)

// Resource is the minimal ownership view the guard needs. OwnerID is the
// listing's seller; BuyerID and SellerID are set for order resources.
type Resource struct {
	OwnerID  string
	BuyerID  string
	SellerID string
}

// ItemResource builds the guard view of a listing.
func ItemResource(sellerID string) Resource {
	return Resource{OwnerID: sellerID}
}

// OrderResource builds the guard view of an order.
func OrderResource(buyerID, sellerID string) Resource {
	return Resource{BuyerID: buyerID, SellerID: sellerID}
}

// CanPerform reports whether the actor may perform the action on the
// resource. Everything not explicitly allowed is denied.
func CanPerform(actor shared.Actor, res Resource, action Action) bool {
	if actor.IsZero() {
		return false
	}

	switch action {
	case ActionApprove, ActionReject:
		return actor.Role == shared.RoleAdmin

	case ActionEdit, ActionDelete, ActionDeactivate, ActionReactivate:
		return actor.ID == res.OwnerID

	case ActionCreateOrder:
		return actor.ID != res.OwnerID

	case ActionFinish, ActionCancel:
		return actor.ID == res.BuyerID || actor.ID == res.SellerID
	}

	return false
}
