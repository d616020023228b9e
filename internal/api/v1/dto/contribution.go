package dto

// ContributionCreateDTO is used for incoming payment records. Amount is a
// decimal string to preserve precision over the wire.
type ContributionCreateDTO struct {
	Amount string `json:"amount" validate:"required"`
	Type   string `json:"type" validate:"omitempty,oneof=savings delivery"`
	Month  int    `json:"month" validate:"required,min=1,max=12"`
	Year   int    `json:"year" validate:"required,min=2024"`
	Note   string `json:"note,omitempty"`
}

// ContributionRecordedDTO is returned after a payment is recorded; the
// upload URL is a presigned PUT for the receipt image.
type ContributionRecordedDTO struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	ReceiptUploadURL string `json:"receipt_upload_url"`
}

// ReviewDTO is used for admin approve and decline requests
type ReviewDTO struct {
	Note string `json:"note,omitempty"`
}

// ReceiptURLDTO carries a presigned GET URL for a stored receipt
type ReceiptURLDTO struct {
	URL string `json:"url"`
}
