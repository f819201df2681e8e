// internal/app/features/activities/curate.go
package activities

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/catalog"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/domain/models"
)

// requireSiteAdmin gates catalog curation. Group admin standing does not
// count here; the catalog is shared by every group.
func requireSiteAdmin(r *http.Request) error {
	p, _ := authn.FromRequest(r)
	if !p.IsSiteAdmin() {
		return apperr.New(apperr.Forbidden, "catalog curation requires the site admin role")
	}
	return nil
}

// Create handles POST /activities. Site admins only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := requireSiteAdmin(r); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req createActivityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	a, err := h.Catalog.Create(r.Context(), models.Activity{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		Category:    req.Category,
		VideoURL:    req.VideoURL,
		Rating:      req.Rating,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, a)
}

// Update handles PATCH /activities/{activityID}. Site admins only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := requireSiteAdmin(r); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	id, err := httpjson.IDParam(r, "activityID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req updateActivityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	a, err := h.Catalog.Update(r.Context(), id, catalog.ActivityPatch{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Category:    req.Category,
		VideoURL:    req.VideoURL,
		Rating:      req.Rating,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Active:      req.Active,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, a)
}

// Delete handles DELETE /activities/{activityID}. Site admins only.
// Existing poll options keep their snapshotted text.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := requireSiteAdmin(r); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	id, err := httpjson.IDParam(r, "activityID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
