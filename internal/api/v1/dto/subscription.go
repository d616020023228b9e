package dto

// SubscribeDTO is used for incoming subscription requests
type SubscribeDTO struct {
	PackageID string `json:"package_id" validate:"required"`
	Slots     int    `json:"slots" validate:"omitempty,min=1"`
}

// SlotsDTO is used for slot count changes
type SlotsDTO struct {
	Slots int `json:"slots" validate:"required,min=1"`
}

// SubscriptionStatusDTO is used for admin status changes
type SubscriptionStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=active reserved suspended inactive"`
}
