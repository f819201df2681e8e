// internal/app/features/activities/types.go
package activities

type createActivityRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	VideoURL    string  `json:"video_url"`
	Rating      int     `json:"rating"`
}

type updateActivityRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Category    *string  `json:"category"`
	VideoURL    *string  `json:"video_url"`
	Rating      *int     `json:"rating"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Active      *bool    `json:"active"`
}
