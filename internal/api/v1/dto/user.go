package dto

// UserProfileDTO is used for incoming profile upsert requests
type UserProfileDTO struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserStatusDTO is used for admin status changes
type UserStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}
