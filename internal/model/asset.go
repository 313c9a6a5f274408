package model

import (
	"fmt"
	"sort"
	"time"
)

// AssetSet holds the generated content of a campaign, 1:1 with Campaign via CampaignID
type AssetSet struct {
	ID         string     `json:"id"`
	User       string     `json:"user"`
	CampaignID string     `json:"campaign_id"`
	Captions   Captions   `json:"captions"`
	Images     Images     `json:"images"`
	Newsletter Newsletter `json:"newsletter"`
	Ads        Ads        `json:"ads"`
	VideoAd    VideoAd    `json:"video_ad"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Captions holds one social caption per platform
type Captions struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

type Images struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

type Newsletter struct {
	Subject      string `json:"subject"`
	Headline     string `json:"headline"`
	Caption      string `json:"caption"`
	CTA          string `json:"cta"`
	Point1       string `json:"point1"`
	Description1 string `json:"description1"`
	Point2       string `json:"point2"`
	Description2 string `json:"description2"`
}

// Ads holds creative references for the three banner formats
type Ads struct {
	Leaderboard Leaderboard `json:"leaderboard"`
	Billboard   Billboard   `json:"billboard"`
	HalfPage    HalfPage    `json:"halfpage"`
}

type Leaderboard struct {
	LeaderBoard1 string `json:"leaderBoard1"`
	LeaderBoard2 string `json:"leaderBoard2"`
	LeaderBoard3 string `json:"leaderBoard3"`
}

type Billboard struct {
	BillBoard1 string `json:"billBoard1"`
	BillBoard2 string `json:"billBoard2"`
	BillBoard3 string `json:"billBoard3"`
}

type HalfPage struct {
	HalfPage1 string `json:"halfPage1"`
	HalfPage2 string `json:"halfPage2"`
	HalfPage3 string `json:"halfPage3"`
}

type VideoAd struct {
	Script      string `json:"script"`
	OverlayText string `json:"overlay_text"`
	VideoURL    string `json:"video_url"`
}

// assetPaths maps every dotted content path to its field
var assetPaths = map[string]func(a *AssetSet) *string{
	"captions.facebook":            func(a *AssetSet) *string { return &a.Captions.Facebook },
	"captions.instagram":           func(a *AssetSet) *string { return &a.Captions.Instagram },
	"captions.linkedin":            func(a *AssetSet) *string { return &a.Captions.LinkedIn },
	"captions.twitter":             func(a *AssetSet) *string { return &a.Captions.Twitter },
	"images.url":                   func(a *AssetSet) *string { return &a.Images.URL },
	"images.prompt":                func(a *AssetSet) *string { return &a.Images.Prompt },
	"newsletter.subject":           func(a *AssetSet) *string { return &a.Newsletter.Subject },
	"newsletter.headline":          func(a *AssetSet) *string { return &a.Newsletter.Headline },
	"newsletter.caption":           func(a *AssetSet) *string { return &a.Newsletter.Caption },
	"newsletter.cta":               func(a *AssetSet) *string { return &a.Newsletter.CTA },
	"newsletter.point1":            func(a *AssetSet) *string { return &a.Newsletter.Point1 },
	"newsletter.description1":      func(a *AssetSet) *string { return &a.Newsletter.Description1 },
	"newsletter.point2":            func(a *AssetSet) *string { return &a.Newsletter.Point2 },
	"newsletter.description2":      func(a *AssetSet) *string { return &a.Newsletter.Description2 },
	"ads.leaderboard.leaderBoard1": func(a *AssetSet) *string { return &a.Ads.Leaderboard.LeaderBoard1 },
	"ads.leaderboard.leaderBoard2": func(a *AssetSet) *string { return &a.Ads.Leaderboard.LeaderBoard2 },
	"ads.leaderboard.leaderBoard3": func(a *AssetSet) *string { return &a.Ads.Leaderboard.LeaderBoard3 },
	"ads.billboard.billBoard1":     func(a *AssetSet) *string { return &a.Ads.Billboard.BillBoard1 },
	"ads.billboard.billBoard2":     func(a *AssetSet) *string { return &a.Ads.Billboard.BillBoard2 },
	"ads.billboard.billBoard3":     func(a *AssetSet) *string { return &a.Ads.Billboard.BillBoard3 },
	"ads.halfpage.halfPage1":       func(a *AssetSet) *string { return &a.Ads.HalfPage.HalfPage1 },
	"ads.halfpage.halfPage2":       func(a *AssetSet) *string { return &a.Ads.HalfPage.HalfPage2 },
	"ads.halfpage.halfPage3":       func(a *AssetSet) *string { return &a.Ads.HalfPage.HalfPage3 },
	"video_ad.script":              func(a *AssetSet) *string { return &a.VideoAd.Script },
	"video_ad.overlay_text":        func(a *AssetSet) *string { return &a.VideoAd.OverlayText },
	"video_ad.video_url":           func(a *AssetSet) *string { return &a.VideoAd.VideoURL },
}

// AssetPaths returns every dotted content path, sorted
func AssetPaths() []string {
	paths := make([]string, 0, len(assetPaths))
	for p := range assetPaths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// NewAssetSet builds an unsaved, empty asset set for a campaign
func NewAssetSet(campaignID string) *AssetSet {
	return &AssetSet{CampaignID: campaignID}
}

func (a *AssetSet) Meta() RecordMeta {
	return RecordMeta{ID: a.ID, UserID: a.User, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

// Fields returns the content of the asset set keyed by dotted path
func (a *AssetSet) Fields() Fields {
	f := make(Fields, len(assetPaths))
	for p, ref := range assetPaths {
		f[p] = *ref(a)
	}
	return f
}

// Apply merges a flattened partial update. On error the asset set is left untouched.
func (a *AssetSet) Apply(patch Fields) error {
	next := *a
	verr := &ValidationError{Fields: map[string]string{}}
	for k, v := range patch {
		ref, ok := assetPaths[k]
		if !ok {
			verr.Fields[k] = "unknown"
			continue
		}
		*ref(&next) = v
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	*a = next
	return nil
}

// ValidateAssetPatch checks the keys of a flattened update
func ValidateAssetPatch(patch Fields) error {
	return NewAssetSet("").Apply(patch)
}

// AssetFromRecord rebuilds an asset set from metadata, its campaign id and stored content
func AssetFromRecord(meta RecordMeta, campaignID string, f Fields) *AssetSet {
	a := NewAssetSet(campaignID)
	a.ID = meta.ID
	a.User = meta.UserID
	a.CreatedAt = meta.CreatedAt
	a.UpdatedAt = meta.UpdatedAt
	for p, ref := range assetPaths {
		*ref(a) = f[p]
	}
	return a
}

// FlattenAssetPatch turns a nested JSON update such as {"captions":{"facebook":"..."}}
// into dotted paths. Leaves must be strings.
func FlattenAssetPatch(body map[string]any) (Fields, error) {
	out := Fields{}
	verr := &ValidationError{Fields: map[string]string{}}
	flatten("", body, out, verr)
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	if err := ValidateAssetPatch(out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out Fields, verr *ValidationError) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(path, val, out, verr)
		case string:
			out[path] = val
		case nil:
			out[path] = ""
		default:
			verr.Fields[path] = fmt.Sprintf("type=%T", v)
		}
	}
}
