package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeUnpriceable, status: http.StatusUnprocessableEntity, publicMsg: "price could not be determined", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "length not selected")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "length not selected" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "length"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("load product: %w", New(CodeNotFound, "no entry"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if !IsCode(err, CodeNotFound) || IsCode(err, CodeValidation) {
		t.Fatalf("IsCode did not inspect the wrapped code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("ingest: %w", Wrap(CodeDependency, stdErrors.New("connection refused"), "upsert product"))
	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three links in the chain, got %v", d.Chain)
	}
	if d.PGCode != "" {
		t.Fatalf("expected no pg code for a plain error, got %q", d.PGCode)
	}
}

func TestInvalidFieldAndErrorString(t *testing.T) {
	err := InvalidField("cable_type", "cable type not selected")
	if err.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", err.Code())
	}
	details, ok := err.Details().(map[string]any)
	if !ok || details["field"] != "cable_type" {
		t.Fatalf("expected field detail, got %v", err.Details())
	}
	if err.Error() != "VALIDATION_ERROR: cable type not selected" {
		t.Fatalf("unexpected error string %q", err.Error())
	}

	wrapped := Wrap(CodeDependency, stdErrors.New("dial tcp: refused"), "load catalog")
	if wrapped.Error() != "DEPENDENCY_ERROR: load catalog: dial tcp: refused" {
		t.Fatalf("cause should be included, got %q", wrapped.Error())
	}
	same := Wrap(CodeValidation, stdErrors.New("length not selected"), "length not selected")
	if same.Error() != "VALIDATION_ERROR: length not selected" {
		t.Fatalf("duplicate cause message should not repeat, got %q", same.Error())
	}
}

func TestDumpDriverDetails(t *testing.T) {
	pg := Dump(Wrap(CodeConflict, &pgconn.PgError{Code: "23505", ConstraintName: "cable_types_slug_key", TableName: "cable_types"}, "store cable types"))
	if pg.PGCode != "23505" || pg.PGConstraint != "cable_types_slug_key" || pg.PGTable != "cable_types" {
		t.Fatalf("pg details not extracted: %+v", pg)
	}
	if pg.Retryable {
		t.Fatalf("conflicts are not retryable")
	}

	lite := Dump(Wrap(CodeDependency, sqlite3.Error{Code: sqlite3.ErrBusy, ExtendedCode: sqlite3.ErrBusySnapshot}, "load catalog"))
	if lite.SQLiteCode == "" {
		t.Fatalf("expected sqlite code in dump: %+v", lite)
	}
	if !lite.Retryable {
		t.Fatalf("dependency errors are retryable")
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil error should dump empty")
	}
}
