// internal/app/features/groups/join.go
package groups

import (
	"net/http"
	"strings"

	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Join handles POST /groups/join. The invite code is the only way in; no
// group ID appears in the request.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	var req joinGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))
	if code == "" {
		httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "invite code is required"))
		return
	}

	// Invite codes are short enough to guess, so throttle attempts before
	// touching the database.
	if ok, reason := h.Joins.Check(r, code); !ok {
		h.Log.Warn("join attempt rate limited",
			zap.String("ip", ratelimit.ClientIP(r)))
		httpjson.Respond(w, http.StatusTooManyRequests, struct {
			Error string `json:"error"`
		}{reason})
		return
	}

	m, err := h.Directory.Join(r.Context(), p.ID, code)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Joins.ResetIP(r)
	httpjson.Respond(w, http.StatusCreated, m)
}
