package model

// StageStatus is the value of a single generation stage field
type StageStatus string

const (
	StageStatusPending    StageStatus = "pending"
	StageStatusGenerating StageStatus = "generating"
	StageStatusCompleted  StageStatus = "completed"
	StageStatusError      StageStatus = "error"
)

var ValidStageStatuses = []StageStatus{
	StageStatusPending, StageStatusGenerating, StageStatusCompleted, StageStatusError,
}

// IsValid reports whether s is one of the wire values external workers understand
func (s StageStatus) IsValid() bool {
	for _, v := range ValidStageStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CampaignStatus is the overall status of a campaign
type CampaignStatus string

const (
	CampaignStatusGenerating CampaignStatus = "generating"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusFailed     CampaignStatus = "failed"
)

var ValidCampaignStatuses = []CampaignStatus{
	CampaignStatusGenerating, CampaignStatusCompleted, CampaignStatusFailed,
}

func (s CampaignStatus) IsValid() bool {
	for _, v := range ValidCampaignStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// IsTerminal reports whether a job in this status will not change again
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed || s == JobStatusCanceled
}

// Bank products offered in the campaign brief
const (
	ProductCreditCard         = "Credit Card"
	ProductFinancialInsurance = "Financial Insurance"
	ProductPersonalLoan       = "Personal Loan"
	ProductSavingsAccount     = "Savings Account"
)

// Creative slots that accept uploaded files
type CreativeSlot string

const (
	SlotImage        CreativeSlot = "images.url"
	SlotVideo        CreativeSlot = "video_ad.video_url"
	SlotLeaderboard1 CreativeSlot = "ads.leaderboard.leaderBoard1"
	SlotLeaderboard2 CreativeSlot = "ads.leaderboard.leaderBoard2"
	SlotLeaderboard3 CreativeSlot = "ads.leaderboard.leaderBoard3"
	SlotBillboard1   CreativeSlot = "ads.billboard.billBoard1"
	SlotBillboard2   CreativeSlot = "ads.billboard.billBoard2"
	SlotBillboard3   CreativeSlot = "ads.billboard.billBoard3"
	SlotHalfPage1    CreativeSlot = "ads.halfpage.halfPage1"
	SlotHalfPage2    CreativeSlot = "ads.halfpage.halfPage2"
	SlotHalfPage3    CreativeSlot = "ads.halfpage.halfPage3"
)

var ValidCreativeSlots = []CreativeSlot{
	SlotImage, SlotVideo,
	SlotLeaderboard1, SlotLeaderboard2, SlotLeaderboard3,
	SlotBillboard1, SlotBillboard2, SlotBillboard3,
	SlotHalfPage1, SlotHalfPage2, SlotHalfPage3,
}

func (s CreativeSlot) IsValid() bool {
	for _, v := range ValidCreativeSlots {
		if s == v {
			return true
		}
	}
	return false
}
