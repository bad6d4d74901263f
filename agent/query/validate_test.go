package query

import (
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

func TestValidateQueryAcceptsRetailQuestion(t *testing.T) {
	t.Parallel()

	if err := ValidateQuery("How many visitors are in the store now?"); err != nil {
		t.Fatalf("ValidateQuery() error = %v", err)
	}
}

func TestValidateQueryRejectsHarmfulContent(t *testing.T) {
	t.Parallel()

	err := ValidateQuery("drop table visitors")
	if !errors.Is(err, contractx.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected, got %v", err)
	}
}

func TestValidateQueryRejectsTooShort(t *testing.T) {
	t.Parallel()

	err := ValidateQuery(" a ")
	if !errors.Is(err, contractx.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected, got %v", err)
	}
}

func TestValidateQueryRejectsTooLong(t *testing.T) {
	t.Parallel()

	err := ValidateQuery("visitor " + strings.Repeat("x", 500))
	if !errors.Is(err, contractx.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected, got %v", err)
	}
}

func TestValidateQueryRejectsOffTopic(t *testing.T) {
	t.Parallel()

	err := ValidateQuery("write me a poem about the sea")
	if !errors.Is(err, contractx.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected, got %v", err)
	}
}

func TestValidateSectionName(t *testing.T) {
	t.Parallel()

	if !ValidateSectionName("Electronics") {
		t.Fatal("plain section name must validate")
	}
	if !ValidateSectionName("aisle_3-b") {
		t.Fatal("alphanumeric with dash/underscore must validate")
	}
	if ValidateSectionName("   ") {
		t.Fatal("blank section name must not validate")
	}
	if ValidateSectionName("elec;tronics") {
		t.Fatal("punctuation must not validate")
	}
	if ValidateSectionName(strings.Repeat("s", 51)) {
		t.Fatal("overlong section name must not validate")
	}
}

func TestValidateTimeRange(t *testing.T) {
	t.Parallel()

	if err := ValidateTimeRange("2026-08-25T00:00:00Z", "2026-08-25T06:00:00Z"); err != nil {
		t.Fatalf("ValidateTimeRange() error = %v", err)
	}

	err := ValidateTimeRange("2026-08-25T06:00:00Z", "2026-08-25T00:00:00Z")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted range, got %v", err)
	}

	err = ValidateTimeRange("2026-07-01T00:00:00Z", "2026-08-15T00:00:00Z")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for 45-day range, got %v", err)
	}

	err = ValidateTimeRange("not-a-time", "2026-08-25T00:00:00Z")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad format, got %v", err)
	}
}
