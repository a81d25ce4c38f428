package hnclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUpstreamError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *UpstreamError
		contains []string
	}{
		{
			name: "with status code",
			err: &UpstreamError{
				Endpoint:   "/v0/newstories.json",
				StatusCode: 503,
				Err:        ErrUpstreamUnavailable,
			},
			contains: []string{"/v0/newstories.json", "503", "upstream unavailable"},
		},
		{
			name: "without status code",
			err: &UpstreamError{
				Endpoint: "/v0/item/42.json",
				Err:      fmt.Errorf("%w: connection refused", ErrUpstreamUnavailable),
			},
			contains: []string{"/v0/item/42.json", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	err := &UpstreamError{
		Endpoint:   "/v0/newstories.json",
		StatusCode: 500,
		Err:        fmt.Errorf("%w: status 500", ErrUpstreamUnavailable),
	}

	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Error("errors.Is should match ErrUpstreamUnavailable through the wrap chain")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("errors.Is should not match ErrMalformedResponse")
	}
}
