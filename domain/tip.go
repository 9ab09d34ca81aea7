package domain

var (
	MessageSuccessGetTips = "tips retrieved successfully"
	MessageFailedGetTips  = "failed to retrieve tips"
)

type TipResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}
