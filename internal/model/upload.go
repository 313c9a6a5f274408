package model

import "time"

// CreativeUploadResponse represents the response for a creative upload
type CreativeUploadResponse struct {
	AssetID     string       `json:"assetId"`
	Slot        CreativeSlot `json:"slot"`
	FileURL     string       `json:"fileUrl"`
	ContentType string       `json:"contentType"`
	Size        int64        `json:"size"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// AcceptsVideo reports whether a creative slot holds a video rather than an image
func (s CreativeSlot) AcceptsVideo() bool {
	return s == SlotVideo
}
