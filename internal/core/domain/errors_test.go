package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	wrapped := WrapDatabaseError(inner)

	if !errors.Is(wrapped, inner) {
		t.Fatal("wrapped error must expose its cause through errors.Is")
	}

	var de *Error
	if !errors.As(fmt.Errorf("listing products: %w", wrapped), &de) {
		t.Fatal("typed error must survive further wrapping")
	}
	if de.Code != CodeDatabaseError {
		t.Fatalf("unexpected code %s", de.Code)
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid page", NewInvalidPageNumber("page must be a positive number"), http.StatusBadRequest},
		{"invalid product data", NewInvalidProductData("title is required"), http.StatusBadRequest},
		{"duplicate code", NewDuplicateProductCode("MC-1"), http.StatusConflict},
		{"undefined product", NewUndefinedProduct(), http.StatusNotFound},
		{"deletion forbidden", NewProductDeletionError(), http.StatusForbidden},
		{"update nothing to apply", NewProductUpdateError("no fields to update"), http.StatusInternalServerError},
		{"plain error defaults to 500", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped typed error", fmt.Errorf("outer: %w", NewUndefinedProduct()), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestWrapDatabaseErrorPreservesStatus(t *testing.T) {
	// A database failure that wraps a typed 404 keeps that status rather
	// than collapsing to 500.
	wrapped := WrapDatabaseError(NewUndefinedProduct())
	if wrapped.Status != http.StatusNotFound {
		t.Fatalf("expected carried status 404, got %d", wrapped.Status)
	}

	plain := WrapDatabaseError(errors.New("timeout"))
	if plain.Status != http.StatusInternalServerError {
		t.Fatalf("expected default 500, got %d", plain.Status)
	}
}
