// internal/app/features/polls/create.go
package polls

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Create handles POST /polls. Any member of the target group may create a
// poll; unknown activity IDs are dropped rather than rejected.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	var req createPollRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	question := sanitize.Text(req.Question)
	if question == "" {
		httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "poll question is required"))
		return
	}

	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invalid group_id"))
		return
	}

	activityIDs := make([]primitive.ObjectID, 0, len(req.ActivityIDs))
	for _, hex := range req.ActivityIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invalid activity id %q", hex))
			return
		}
		activityIDs = append(activityIDs, id)
	}

	detail, err := h.Engine.Create(r.Context(), question, groupID, req.ExpiresAt, activityIDs, p.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, detail)
}
