// internal/app/system/paging/paging.go

// Package paging parses the limit/offset query parameters shared by
// list endpoints.
package paging

import (
	"net/http"
	"strconv"

	"github.com/huddleup/huddle/internal/app/system/apperr"
)

// MaxLimit caps page sizes so a single request cannot drag the whole
// collection over the wire.
const MaxLimit = 100

// Limit extracts the "limit" query parameter. Absent means 0, which
// callers treat as "use the endpoint default". Values above MaxLimit
// are clamped rather than rejected.
func Limit(r *http.Request) (int64, error) {
	n, err := parse(r, "limit")
	if err != nil {
		return 0, err
	}
	if n > MaxLimit {
		return MaxLimit, nil
	}
	return n, nil
}

// Offset extracts the "offset" query parameter. Absent means 0.
func Offset(r *http.Request) (int64, error) {
	return parse(r, "offset")
}

func parse(r *http.Request, name string) (int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, apperr.New(apperr.BadRequest, "invalid %s", name)
	}
	return n, nil
}
