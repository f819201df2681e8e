// internal/app/system/paging/paging_test.go
package paging

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/huddleup/huddle/internal/app/system/apperr"
)

func TestLimit(t *testing.T) {
	cases := []struct {
		url     string
		want    int64
		wantErr bool
	}{
		{"/activities", 0, false},
		{"/activities?limit=10", 10, false},
		{"/activities?limit=0", 0, false},
		{"/activities?limit=500", MaxLimit, false},
		{"/activities?limit=-1", 0, true},
		{"/activities?limit=abc", 0, true},
	}
	for _, tc := range cases {
		got, err := Limit(httptest.NewRequest("GET", tc.url, nil))
		if tc.wantErr {
			if !errors.Is(err, apperr.BadRequest) {
				t.Errorf("%s: expected bad-request, got %v", tc.url, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.url, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestOffset(t *testing.T) {
	got, err := Offset(httptest.NewRequest("GET", "/activities?offset=8", nil))
	if err != nil || got != 8 {
		t.Errorf("offset=8: got %d, %v", got, err)
	}

	if _, err := Offset(httptest.NewRequest("GET", "/activities?offset=nope", nil)); !errors.Is(err, apperr.BadRequest) {
		t.Errorf("expected bad-request, got %v", err)
	}
}
