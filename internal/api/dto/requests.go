package dto

// UpdatePreferencesRequest is the JSON body for updating a user's
// daily quote preferences.
type UpdatePreferencesRequest struct {
	Enabled      *bool  `json:"enabled" validate:"required"`
	DeliveryTime string `json:"delivery_time" validate:"required"`
	Timezone     string `json:"timezone" validate:"required"`
	Language     string `json:"language" validate:"required,oneof=english hindi sanskrit"`
	QuoteType    string `json:"quote_type" validate:"required,oneof=random sequential themed"`
}

// ResetProgressRequest is the JSON body for resetting a user's
// sequential reading position.
type ResetProgressRequest struct {
	Chapter int `json:"chapter" validate:"required,min=1,max=18"`
	Verse   int `json:"verse" validate:"required,min=1"`
}
