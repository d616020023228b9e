package dto

// AnnouncementWriteDTO is used for incoming announcement create and update
// requests
type AnnouncementWriteDTO struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Pinned bool   `json:"pinned,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// PinDTO toggles an announcement's pinned flag
type PinDTO struct {
	Pinned bool `json:"pinned"`
}
