// internal/app/features/polls/vote.go
package polls

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote handles POST /polls/{pollID}/votes. The engine runs the ordered
// validation chain; the handler only parses and maps.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	pollID, err := httpjson.IDParam(r, "pollID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req voteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	optionID, err := primitive.ObjectIDFromHex(req.OptionID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invalid option_id"))
		return
	}

	receipt, err := h.Engine.Vote(r.Context(), pollID, optionID, p.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, receipt)
}
