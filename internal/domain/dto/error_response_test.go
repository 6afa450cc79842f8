package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Message: "oops"}
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
	e2 := ErrorResponse{Message: "oops", ErrorDetails: "bad"}
	if e2.Error() != "oops: bad" {
		t.Fatalf("want 'oops: bad' got %q", e2.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	// without inner error
	e := NewErrorResponse("msg", nil)
	if e.Message != "msg" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set")
	}

	// with inner error
	err := errors.New("boom")
	e2 := NewErrorResponse("msg", err)
	if e2.ErrorDetails != "boom" || e2.Message != "msg" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestNewErrorResponse_UTCTimestamp(t *testing.T) {
	e := NewErrorResponse("msg", nil)
	if e.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not in UTC: %v", e.Timestamp.Location())
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantDetails bool
	}{
		{name: "details omitted", err: nil, wantDetails: false},
		{name: "details present", err: errors.New("source I/O error"), wantDetails: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(NewErrorResponse("trade statistics unavailable", tc.err))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var raw map[string]any
			if err := json.Unmarshal(b, &raw); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if raw["message"] != "trade statistics unavailable" {
				t.Fatalf("message %v", raw["message"])
			}
			if _, ok := raw["timestamp"]; !ok {
				t.Fatalf("missing timestamp in %s", b)
			}
			if _, ok := raw["error_details"]; ok != tc.wantDetails {
				t.Fatalf("error_details present=%v, want %v: %s", ok, tc.wantDetails, b)
			}
		})
	}
}
