package dto

// DeliveryPreferenceDTO is used for incoming preference updates
type DeliveryPreferenceDTO struct {
	Method      string `json:"method" validate:"required,oneof=pickup delivery"`
	AddressLine string `json:"address_line,omitempty" validate:"required_if=Method delivery"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty" validate:"required_if=Method delivery"`
	Phone       string `json:"phone,omitempty"`
}

// DeliveryFeeDTO is used for admin fee upserts. Amount is a decimal string.
type DeliveryFeeDTO struct {
	State  string `json:"state" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}
