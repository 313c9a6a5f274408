package generation

import "github.com/genaimarketing/api/internal/model"

// Stage describes one generation step and the status fields an external worker flips for it
type Stage struct {
	Name            string
	Fields          []string
	Fanned          bool // every field must complete independently
	GeneratingLabel string
	CompletedLabel  string
}

// Labels shared by every consumer of generation progress
const (
	LabelCreating  = "Creating campaign..."
	LabelCompleted = "All assets generated!"
)

var stages = []Stage{
	{
		Name:            "captions",
		Fields:          []string{model.FieldCaptionsStatus},
		GeneratingLabel: "Generating social media captions...",
		CompletedLabel:  "Social media captions generated.",
	},
	{
		Name:            "newsletter",
		Fields:          []string{model.FieldNewsletterStatus},
		GeneratingLabel: "Creating newsletter content...",
		CompletedLabel:  "Newsletter content created.",
	},
	{
		Name:            "images",
		Fields:          []string{model.FieldImagesStatus},
		GeneratingLabel: "Generating relevant image...",
		CompletedLabel:  "Images generated.",
	},
	{
		Name: "ads",
		Fields: []string{
			model.FieldAdsLeaderboard1, model.FieldAdsLeaderboard2, model.FieldAdsLeaderboard3,
			model.FieldAdsBillboard1, model.FieldAdsBillboard2, model.FieldAdsBillboard3,
			model.FieldAdsHalfPage1, model.FieldAdsHalfPage2, model.FieldAdsHalfPage3,
		},
		Fanned:          true,
		GeneratingLabel: "Creating Ad Banners...",
		CompletedLabel:  "Ad Banners ready.",
	},
	{
		Name:            "video",
		Fields:          []string{model.FieldVideoStatus},
		GeneratingLabel: "Creating short video...",
		CompletedLabel:  "Short video created.",
	},
}

// Stages returns the stage descriptors in generation order
func Stages() []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		s.Fields = append([]string(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// StageByName looks up a stage descriptor
func StageByName(name string) (Stage, bool) {
	for _, s := range Stages() {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// AllFields returns every status field in generation order
func AllFields() []string {
	var out []string
	for _, s := range stages {
		out = append(out, s.Fields...)
	}
	return out
}
