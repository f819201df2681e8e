// internal/app/features/groups/types.go
package groups

type createGroupRequest struct {
	Name string `json:"name"`
}

type joinGroupRequest struct {
	InviteCode string `json:"invite_code"`
}

type updateGroupRequest struct {
	Name *string `json:"name"`
}
