package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidation(t *testing.T) {
	validationErrs := []error{
		ErrBasicOrderDataRequired,
		ErrInvalidItemDetails,
		ErrItemQtyPriceInvalid,
		ErrStatusBlank,
		ErrInvalidCustomerID,
		ErrInvalidBranchID,
		ErrInvalidOrderID,
		ErrInsufficientStock,
		ErrTotalMismatch,
	}
	for _, err := range validationErrs {
		if !IsValidation(err) {
			t.Errorf("%v must be a validation error", err)
		}
		if IsNotFound(err) {
			t.Errorf("%v must not be a not-found error", err)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound must be a not-found error")
	}
	if IsValidation(ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound must not be a validation error")
	}
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("save order: %w", ErrOrderNotFound)
	if !IsNotFound(wrapped) {
		t.Fatal("wrapping must preserve the not-found kind")
	}

	wrapped = fmt.Errorf("create order: %w", ErrBasicOrderDataRequired)
	if !IsValidation(wrapped) {
		t.Fatal("wrapping must preserve the validation kind")
	}
}

func TestUnrelatedErrorMatchesNoKind(t *testing.T) {
	err := errors.New("connection reset")
	if IsValidation(err) || IsNotFound(err) {
		t.Fatal("unrelated error must not match any domain kind")
	}
}
