package errors

import (
	stderrors "errors"
	"testing"

	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"item not found", item.NewNotFoundError("i-1"), CodeItemNotFound},
		{"order not found", order.NewNotFoundError("o-1"), CodeOrderNotFound},
		{"favorite not found", favorite.ErrFavoriteNotFound, CodeNotFound},
		{"unauthorized", shared.NewDomainError(shared.ErrUnauthorized, "item", "no"), CodeForbidden},
		{"invalid transition", item.NewInvalidTransitionError("i-1", item.StateSold, item.StateOnSale), CodeInvalidTransition},
		{"terminal state", item.NewTerminalStateError("i-1", item.StateSold), CodeInvalidTransition},
		{"invalid item state", order.NewInvalidItemStateError("i-1", "PENDING"), CodeInvalidItemState},
		{"self purchase", order.NewSelfPurchaseError("i-1", "u-1"), CodeSelfPurchase},
		{"validation", shared.NewValidationError("item", "title", "blank"), CodeValidation},
		{"item concurrent modification", item.NewConcurrentModificationError("i-1"), CodeConflict},
		{"order concurrent modification", order.NewConcurrentModificationError("o-1"), CodeConflict},
		{"item no longer available", order.NewItemNoLongerAvailableError("o-1", "i-1"), CodeConflict},
		{"open order exists", item.NewOpenOrderExistsError("i-1"), CodeConflict},
		{"already favorited", favorite.ErrAlreadyFavorited, CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomainError(tt.err)
			if got.Code != tt.want {
				t.Errorf("code = %s, want %s", got.Code, tt.want)
			}
			if got.Message == "internal server error" {
				t.Error("client-visible error must keep the domain message")
			}
		})
	}
}

func TestFromDomainErrorMasksInternals(t *testing.T) {
	cause := stderrors.New("dial tcp 10.0.0.5:3306: connection refused")
	got := FromDomainError(cause)
	if got.Code != CodeInternal {
		t.Errorf("code = %s, want %s", got.Code, CodeInternal)
	}
	if got.Message != "internal server error" {
		t.Errorf("message %q leaks the cause", got.Message)
	}
	if !stderrors.Is(got, cause) {
		t.Error("cause must stay reachable for logging")
	}
}

func TestFromDomainErrorPassthrough(t *testing.T) {
	original := Forbidden("nope")
	if got := FromDomainError(original); got != original {
		t.Error("an AppError must pass through unchanged")
	}
	if got := FromDomainError(nil); got != nil {
		t.Errorf("nil in, nil out; got %v", got)
	}
}

func TestIs(t *testing.T) {
	err := NotFound("gone")
	if !Is(err, CodeNotFound) {
		t.Error("Is should match the carried code")
	}
	if Is(err, CodeConflict) {
		t.Error("Is must not match a different code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Error("Is must not match a non-AppError")
	}
}
