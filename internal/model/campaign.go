package model

import (
	"strings"
	"time"
)

// Fields is the flat string representation of a record used for storage and partial updates
type Fields map[string]string

// Campaign attribute fields
const (
	FieldName           = "name"
	FieldBankProduct    = "bank_product"
	FieldTheme          = "theme"
	FieldTargetAudience = "target_audience"
	FieldDescription    = "description"
	FieldStatus         = "status"
)

// Record metadata fields, owned by the store
const (
	FieldID        = "id"
	FieldUser      = "user"
	FieldCampaign  = "campaign_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Stage status fields
const (
	FieldCaptionsStatus   = "captions_status"
	FieldNewsletterStatus = "newsletter_status"
	FieldImagesStatus     = "images_status"
	FieldAdsLeaderboard1  = "ads_leaderboard_1_status"
	FieldAdsLeaderboard2  = "ads_leaderboard_2_status"
	FieldAdsLeaderboard3  = "ads_leaderboard_3_status"
	FieldAdsBillboard1    = "ads_billboard_1_status"
	FieldAdsBillboard2    = "ads_billboard_2_status"
	FieldAdsBillboard3    = "ads_billboard_3_status"
	FieldAdsHalfPage1     = "ads_half_page_1_status"
	FieldAdsHalfPage2     = "ads_half_page_2_status"
	FieldAdsHalfPage3     = "ads_half_page_3_status"
	FieldVideoStatus      = "video_status"
)

// StatusFields lists every stage status field in generation order
var StatusFields = []string{
	FieldCaptionsStatus,
	FieldNewsletterStatus,
	FieldImagesStatus,
	FieldAdsLeaderboard1, FieldAdsLeaderboard2, FieldAdsLeaderboard3,
	FieldAdsBillboard1, FieldAdsBillboard2, FieldAdsBillboard3,
	FieldAdsHalfPage1, FieldAdsHalfPage2, FieldAdsHalfPage3,
	FieldVideoStatus,
}

var attributeFields = []string{
	FieldName, FieldBankProduct, FieldTheme, FieldTargetAudience, FieldDescription,
}

// IsStatusField reports whether name is one of the stage status fields
func IsStatusField(name string) bool {
	for _, f := range StatusFields {
		if f == name {
			return true
		}
	}
	return false
}

// StageName strips the _status suffix: "images_status" -> "images"
func StageName(field string) string {
	return strings.TrimSuffix(field, "_status")
}

// RecordMeta holds the store-assigned part of a record
type RecordMeta struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CampaignInput is the brief a user submits to start a generation
type CampaignInput struct {
	Name           string `json:"name" validate:"required,max=200"`
	BankProduct    string `json:"bank_product" validate:"omitempty,max=100"`
	Theme          string `json:"theme" validate:"required,max=100"`
	TargetAudience string `json:"target_audience" validate:"required,max=200"`
	Description    string `json:"description" validate:"omitempty,max=4000"`
}

// Campaign is the unit of generation work
type Campaign struct {
	ID             string         `json:"id"`
	User           string         `json:"user"`
	Name           string         `json:"name"`
	BankProduct    string         `json:"bank_product"`
	Theme          string         `json:"theme"`
	TargetAudience string         `json:"target_audience"`
	Description    string         `json:"description"`
	Status         CampaignStatus `json:"status"`

	CaptionsStatus        StageStatus `json:"captions_status"`
	NewsletterStatus      StageStatus `json:"newsletter_status"`
	ImagesStatus          StageStatus `json:"images_status"`
	AdsLeaderboard1Status StageStatus `json:"ads_leaderboard_1_status"`
	AdsLeaderboard2Status StageStatus `json:"ads_leaderboard_2_status"`
	AdsLeaderboard3Status StageStatus `json:"ads_leaderboard_3_status"`
	AdsBillboard1Status   StageStatus `json:"ads_billboard_1_status"`
	AdsBillboard2Status   StageStatus `json:"ads_billboard_2_status"`
	AdsBillboard3Status   StageStatus `json:"ads_billboard_3_status"`
	AdsHalfPage1Status    StageStatus `json:"ads_half_page_1_status"`
	AdsHalfPage2Status    StageStatus `json:"ads_half_page_2_status"`
	AdsHalfPage3Status    StageStatus `json:"ads_half_page_3_status"`
	VideoStatus           StageStatus `json:"video_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCampaign builds an unsaved campaign with every stage pending and the overall status generating
func NewCampaign(in CampaignInput) *Campaign {
	c := &Campaign{
		Name:           in.Name,
		BankProduct:    in.BankProduct,
		Theme:          in.Theme,
		TargetAudience: in.TargetAudience,
		Description:    in.Description,
		Status:         CampaignStatusGenerating,
	}
	for _, f := range StatusFields {
		*c.statusRef(f) = StageStatusPending
	}
	return c
}

func (c *Campaign) statusRef(field string) *StageStatus {
	switch field {
	case FieldCaptionsStatus:
		return &c.CaptionsStatus
	case FieldNewsletterStatus:
		return &c.NewsletterStatus
	case FieldImagesStatus:
		return &c.ImagesStatus
	case FieldAdsLeaderboard1:
		return &c.AdsLeaderboard1Status
	case FieldAdsLeaderboard2:
		return &c.AdsLeaderboard2Status
	case FieldAdsLeaderboard3:
		return &c.AdsLeaderboard3Status
	case FieldAdsBillboard1:
		return &c.AdsBillboard1Status
	case FieldAdsBillboard2:
		return &c.AdsBillboard2Status
	case FieldAdsBillboard3:
		return &c.AdsBillboard3Status
	case FieldAdsHalfPage1:
		return &c.AdsHalfPage1Status
	case FieldAdsHalfPage2:
		return &c.AdsHalfPage2Status
	case FieldAdsHalfPage3:
		return &c.AdsHalfPage3Status
	case FieldVideoStatus:
		return &c.VideoStatus
	}
	return nil
}

func (c *Campaign) attributeRef(field string) *string {
	switch field {
	case FieldName:
		return &c.Name
	case FieldBankProduct:
		return &c.BankProduct
	case FieldTheme:
		return &c.Theme
	case FieldTargetAudience:
		return &c.TargetAudience
	case FieldDescription:
		return &c.Description
	}
	return nil
}

// StageStatus returns the current value of a stage field. ok is false for unknown fields.
func (c *Campaign) StageStatus(field string) (StageStatus, bool) {
	ref := c.statusRef(field)
	if ref == nil {
		return "", false
	}
	return *ref, true
}

// AllStagesCompleted reports whether every stage field reads completed
func (c *Campaign) AllStagesCompleted() bool {
	for _, f := range StatusFields {
		if *c.statusRef(f) != StageStatusCompleted {
			return false
		}
	}
	return true
}

// Meta returns the store-owned part of the record
func (c *Campaign) Meta() RecordMeta {
	return RecordMeta{ID: c.ID, UserID: c.User, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// Fields returns the mutable part of the record as a flat map
func (c *Campaign) Fields() Fields {
	f := make(Fields, len(attributeFields)+len(StatusFields)+1)
	for _, name := range attributeFields {
		f[name] = *c.attributeRef(name)
	}
	for _, name := range StatusFields {
		f[name] = string(*c.statusRef(name))
	}
	f[FieldStatus] = string(c.Status)
	return f
}

// Apply merges a partial update into the campaign. The update is applied atomically:
// on error the campaign is left untouched.
func (c *Campaign) Apply(patch Fields) error {
	next := *c
	verr := &ValidationError{Fields: map[string]string{}}

	for k, v := range patch {
		switch {
		case k == FieldID || k == FieldUser || k == FieldCreatedAt || k == FieldUpdatedAt:
			verr.Fields[k] = "readonly"
		case k == FieldStatus:
			s := CampaignStatus(v)
			if !s.IsValid() {
				verr.Fields[k] = "oneof=generating completed failed"
				continue
			}
			next.Status = s
		case next.statusRef(k) != nil:
			s := StageStatus(v)
			if !s.IsValid() {
				verr.Fields[k] = "oneof=pending generating completed error"
				continue
			}
			*next.statusRef(k) = s
		case next.attributeRef(k) != nil:
			*next.attributeRef(k) = v
		default:
			verr.Fields[k] = "unknown"
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	*c = next
	return nil
}

// ValidateCampaignPatch checks keys and status values of a partial update without a record at hand
func ValidateCampaignPatch(patch Fields) error {
	return NewCampaign(CampaignInput{}).Apply(patch)
}

// CheckCompletion enforces that the overall status never reads completed while a stage is unfinished
func (c *Campaign) CheckCompletion() error {
	if c.Status == CampaignStatusCompleted && !c.AllStagesCompleted() {
		return NewValidationError(FieldStatus, "stages_incomplete")
	}
	return nil
}

// CampaignFromRecord rebuilds a campaign from its metadata and stored fields.
// Missing stage fields read as pending, a missing overall status as generating.
func CampaignFromRecord(meta RecordMeta, f Fields) *Campaign {
	c := NewCampaign(CampaignInput{})
	c.ID = meta.ID
	c.User = meta.UserID
	c.CreatedAt = meta.CreatedAt
	c.UpdatedAt = meta.UpdatedAt

	for _, name := range attributeFields {
		*c.attributeRef(name) = f[name]
	}
	for _, name := range StatusFields {
		if v, ok := f[name]; ok && v != "" {
			*c.statusRef(name) = StageStatus(v)
		}
	}
	if v, ok := f[FieldStatus]; ok && v != "" {
		c.Status = CampaignStatus(v)
	}
	return c
}
