package apperror

import (
	"errors"
	"net/http"
	"testing"
)

func TestFieldErrorsCollect(t *testing.T) {
	var fe FieldErrors
	if fe.Err() != nil {
		t.Fatal("empty collector must not produce an error")
	}

	fe.Add("items[0].itemName", "Item name is required")
	fe.Add("items[%d].itemType", "bad")
	err := fe.Err()
	if !IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if got := GetAppError(err).Errors; len(got) != 2 || got[0].Field != "items[0].itemName" {
		t.Fatalf("errors = %+v", got)
	}
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("Failed to save data: connection refused", cause)

	if err.Code != http.StatusBadGateway {
		t.Fatalf("code = %d", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause must stay reachable")
	}
}

func TestGetAppErrorDefaultsTo500(t *testing.T) {
	got := GetAppError(errors.New("boom"))
	if got.Code != http.StatusInternalServerError || got.Message != "boom" {
		t.Fatalf("got %+v", got)
	}
	if IsAppError(errors.New("plain")) {
		t.Fatal("plain error is not an AppError")
	}
}
