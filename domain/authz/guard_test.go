package authz

import (
	"testing"

	"marketplace/domain/shared"
)

func TestCanPerform(t *testing.T) {
	admin := shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}
	seller := shared.Actor{ID: "seller-1", Role: shared.RoleUser}
	buyer := shared.Actor{ID: "buyer-1", Role: shared.RoleUser}
	stranger := shared.Actor{ID: "stranger-1", Role: shared.RoleUser}
	anonymous := shared.Actor{}

	listing := ItemResource("seller-1")
	deal := OrderResource("buyer-1", "seller-1")

	tests := []struct {
		name   string
		actor  shared.Actor
		res    Resource
		action Action
		want   bool
	}{
		// Moderation is role-gated, ownership is irrelevant.
		{"admin approves", admin, listing, ActionApprove, true},
		{"admin rejects", admin, listing, ActionReject, true},
		{"seller cannot approve own listing", seller, listing, ActionApprove, false},
		{"stranger cannot reject", stranger, listing, ActionReject, false},

		// Listing management is owner-gated, role is irrelevant.
		{"owner edits", seller, listing, ActionEdit, true},
		{"owner deletes", seller, listing, ActionDelete, true},
		{"owner deactivates", seller, listing, ActionDeactivate, true},
		{"owner reactivates", seller, listing, ActionReactivate, true},
		{"admin cannot edit another's listing", admin, listing, ActionEdit, false},
		{"stranger cannot delete", stranger, listing, ActionDelete, false},

		// Ordering: anyone but the owner.
		{"buyer orders", buyer, listing, ActionCreateOrder, true},
		{"stranger orders", stranger, listing, ActionCreateOrder, true},
		{"owner cannot order own listing", seller, listing, ActionCreateOrder, false},

		// Order completion: both participants, nobody else.
		{"buyer finishes", buyer, deal, ActionFinish, true},
		{"seller finishes", seller, deal, ActionFinish, true},
		{"buyer cancels", buyer, deal, ActionCancel, true},
		{"seller cancels", seller, deal, ActionCancel, true},
		{"stranger cannot finish", stranger, deal, ActionFinish, false},
		{"admin cannot cancel others' order", admin, deal, ActionCancel, false},

		// No identity, no access.
		{"anonymous edit", anonymous, listing, ActionEdit, false},
		{"anonymous order", anonymous, listing, ActionCreateOrder, false},
		{"anonymous finish", anonymous, deal, ActionFinish, false},

		// Unknown actions are denied.
		{"unknown action", admin, listing, Action("transmogrify"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPerform(tt.actor, tt.res, tt.action); got != tt.want {
				t.Errorf("CanPerform(%s, %s) = %v, want %v", tt.actor.ID, tt.action, got, tt.want)
			}
		})
	}
}
