// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Source selector values
const (
	SourceScanner  = "scanner"
	SourceReviewed = "reviewed"
	SourceAll      = "all"
)

// Gender filter values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Age bracket filter values
const (
	Age18To25 = "18-25"
	Age26To35 = "26-35"
	Age36To45 = "36-45"
	Age46To55 = "46-55"
	Age56To65 = "56-65"
	Age65Plus = "65+"
)

// Tri-state flag values
const (
	Yes = "yes"
	No  = "no"
)

// Pagination bounds
const (
	DefaultLimit = 200
	MinLimit     = 1
	MaxLimit     = 1000
)

// Filter is the canonical filter record shared by every dashboard query.
// An empty string field means "no constraint"; non-empty values are trimmed
// and lowercased.
type Filter struct {
	Search         string
	Ward           string
	Booth          string
	Gender         string
	Caste          string
	AgeGroup       string
	MotherTongue   string
	VoterType      string
	PollingStation string
	Society        string
	HasRationCard  string
	HasComplaint   string

	Limit  int
	Offset int

	// Source is a source key or SourceAll. Never empty after normalization.
	Source string
}

// Response types

type HealthResponse struct {
	OK      bool     `json:"ok"`
	Sources int      `json:"sources"`
	Keys    []string `json:"keys"`
}

type StatsResponse struct {
	TotalVoters       int `json:"totalVoters"`
	MaleVoters        int `json:"maleVoters"`
	FemaleVoters      int `json:"femaleVoters"`
	OtherVoters       int `json:"otherVoters"`
	YouthVoters       int `json:"youthVoters"`
	DuplicateVoters   int `json:"duplicateVoters"`
	VoterCountOnHouse int `json:"voterCountOnHouse"`
	TotalBooth        int `json:"totalBooth"`
	TotalEvent        int `json:"totalEvent"`
}

// Add returns the counter-wise sum of two stats records.
func (s StatsResponse) Add(o StatsResponse) StatsResponse {
	return StatsResponse{
		TotalVoters:       s.TotalVoters + o.TotalVoters,
		MaleVoters:        s.MaleVoters + o.MaleVoters,
		FemaleVoters:      s.FemaleVoters + o.FemaleVoters,
		OtherVoters:       s.OtherVoters + o.OtherVoters,
		YouthVoters:       s.YouthVoters + o.YouthVoters,
		DuplicateVoters:   s.DuplicateVoters + o.DuplicateVoters,
		VoterCountOnHouse: s.VoterCountOnHouse + o.VoterCountOnHouse,
		TotalBooth:        s.TotalBooth + o.TotalBooth,
		TotalEvent:        s.TotalEvent + o.TotalEvent,
	}
}

type CategorySlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type GenderAreaSlice struct {
	Booth  string `json:"booth"`
	Male   int    `json:"male"`
	Female int    `json:"female"`
}

type VoterRecord struct {
	SlNo           int    `json:"slNo"`
	CardNo         string `json:"cardNo"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	NewAddress     string `json:"newAddress"`
	VoterID        string `json:"voterId"`
	ParNo          string `json:"parNo"`
	WardName       string `json:"wardName"`
	WardNo         string `json:"wardNo"`
	Caste          string `json:"caste,omitempty"`
	MotherTongue   string `json:"motherTongue,omitempty"`
	PhoneNo        string `json:"phoneNo,omitempty"`
	RationCardNo   string `json:"rationCardNo,omitempty"`
	Landmark       string `json:"landmark,omitempty"`
	NextHouseMobNo string `json:"nextHouseMobNo,omitempty"`
	Complaint      string `json:"complaint,omitempty"`
	Dataset        string `json:"dataset"`
}

type VoterResponse struct {
	Total int           `json:"total"`
	Data  []VoterRecord `json:"data"`
}

// Error response

type ErrorResponse struct {
	Message string `json:"message"`
}
