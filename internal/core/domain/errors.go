package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Store-level sentinels raised by the repositories. The services translate
// them into catalog errors or rejection outcomes; they never reach a client.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateCode   = errors.New("product code already in use")
)

// ErrorCode enumerates the machine-readable catalog error codes.
type ErrorCode string

const (
	CodeInvalidPageNumber    ErrorCode = "INVALID_PAGE_NUMBER"
	CodeInvalidProductData   ErrorCode = "INVALID_PRODUCT_DATA"
	CodeDuplicateProductCode ErrorCode = "DUPLICATE_PRODUCT_CODE"
	CodeUndefinedProduct     ErrorCode = "UNDEFINED_PRODUCT"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeProductCreation      ErrorCode = "PRODUCT_CREATION_ERROR"
	CodeProductUpdate        ErrorCode = "PRODUCT_UPDATE_ERROR"
	CodeProductDeletion      ErrorCode = "PRODUCT_DELETION_ERROR"
)

// Error is a typed domain error: a code, a message suitable for clients, a
// diagnostic cause that is not, an HTTP-equivalent status, and optionally
// the underlying error that triggered it.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf extracts the HTTP-equivalent status carried by err, defaulting to
// 500 for errors outside the taxonomy.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}

// NewInvalidPageNumber reports a page parameter that is not a valid number or
// points past the last page.
func NewInvalidPageNumber(cause string) *Error {
	return &Error{
		Code:    CodeInvalidPageNumber,
		Message: "the requested page does not exist",
		Cause:   cause,
		Status:  http.StatusBadRequest,
	}
}

// NewInvalidProductData reports product input that fails the creation rules.
func NewInvalidProductData(cause string) *Error {
	return &Error{
		Code:    CodeInvalidProductData,
		Message: "the product could not be added",
		Cause:   cause,
		Status:  http.StatusBadRequest,
	}
}

// NewDuplicateProductCode reports an attempt to reuse an existing product code.
func NewDuplicateProductCode(code string) *Error {
	return &Error{
		Code:    CodeDuplicateProductCode,
		Message: "product code already in use",
		Cause:   fmt.Sprintf("the code %q belongs to another product, choose a different one", code),
		Status:  http.StatusConflict,
	}
}

// NewUndefinedProduct reports a lookup for a product that does not exist or
// whose id is malformed.
func NewUndefinedProduct() *Error {
	return &Error{
		Code:    CodeUndefinedProduct,
		Message: "the product does not exist",
		Cause:   "the id must reference an existing product",
		Status:  http.StatusNotFound,
	}
}

// WrapDatabaseError wraps an unexpected store failure, preserving any status
// the underlying error carries.
func WrapDatabaseError(err error) *Error {
	return &Error{
		Code:    CodeDatabaseError,
		Message: "could not reach the product store",
		Cause:   "an error occurred while querying the database",
		Status:  StatusOf(err),
		Err:     err,
	}
}

// WrapProductCreation wraps a failure on the product creation path that is
// not covered by a more specific code.
func WrapProductCreation(err error) *Error {
	return &Error{
		Code:    CodeProductCreation,
		Message: "the product could not be stored",
		Cause:   "an error occurred while persisting the product",
		Status:  StatusOf(err),
		Err:     err,
	}
}

// NewProductUpdateError reports an update request with nothing to apply.
func NewProductUpdateError(cause string) *Error {
	return &Error{
		Code:    CodeProductUpdate,
		Message: "the product could not be updated",
		Cause:   cause,
		Status:  http.StatusInternalServerError,
	}
}

// NewProductDeletionError reports a delete attempt by a requester who is
// neither an admin nor the product owner.
func NewProductDeletionError() *Error {
	return &Error{
		Code:    CodeProductDeletion,
		Message: "the product could not be deleted",
		Cause:   "the requester lacks permission to delete this product",
		Status:  http.StatusForbidden,
	}
}
