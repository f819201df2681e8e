// internal/app/features/polls/update.go
package polls

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/policy/grouppolicy"
	"github.com/huddleup/huddle/internal/app/pollengine"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/sanitize"
)

// Update handles PATCH /polls/{pollID}. Admins of the owning group only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	pollID, err := httpjson.IDParam(r, "pollID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	groupID, err := h.Engine.GroupOf(r.Context(), pollID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := grouppolicy.RequireAdmin(r.Context(), h.DB, p, groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req updatePollRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	patch := pollengine.PollPatch{ExpiresAt: req.ExpiresAt}
	if req.Question != nil {
		question := sanitize.Text(*req.Question)
		if question == "" {
			httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "poll question cannot be empty"))
			return
		}
		patch.Question = &question
	}

	detail, err := h.Engine.Update(r.Context(), pollID, patch)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}
