// internal/app/features/activities/search.go
package activities

import (
	"net/http"
	"strconv"

	"github.com/huddleup/huddle/internal/app/catalog"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/paging"
)

// Search handles GET /activities. Query parameters:
//
//	q          substring match on name or description, case-insensitive
//	category   repeatable exact category filter
//	lat, lon   caller location; both present enables proximity ranking
//	limit      page size (default 4)
//	offset     page start
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := catalog.SearchParams{
		Query:      q.Get("q"),
		Categories: q["category"],
	}

	limit, err := paging.Limit(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	offset, err := paging.Offset(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	params.Limit = limit
	params.Offset = offset

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invalid lat"))
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invalid lon"))
			return
		}
		params.Latitude = &lat
		params.Longitude = &lon
	}

	acts, err := h.Catalog.Search(r.Context(), params)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, acts)
}

// Random handles GET /activities/random for "surprise me" flows.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	limit, err := paging.Limit(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	acts, err := h.Catalog.FindRandom(r.Context(), limit)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, acts)
}

// Detail handles GET /activities/{activityID}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.IDParam(r, "activityID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	a, err := h.Catalog.FindByID(r.Context(), id)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, a)
}
