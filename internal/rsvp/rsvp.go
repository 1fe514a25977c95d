// Package rsvp holds the RSVP data contract shared by the invitation form,
// the admin viewer and the hosted function: what a guest submits, what the
// store returns, and the aggregates computed over the returned list.
package rsvp

import (
	"strings"
)

// Attendance is the guest's binary decision.
type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo
}

// GuestsCount is the party size offered by the form: the guest alone or with a +1.
type GuestsCount string

const (
	GuestsOne GuestsCount = "1"
	GuestsTwo GuestsCount = "2"
)

func (g GuestsCount) Valid() bool {
	return g == GuestsOne || g == GuestsTwo
}

// Submission is the write-side document posted to the hosted function.
// The whole field set is always serialized, including fields that are not
// meaningful for the chosen attendance.
type Submission struct {
	Name                string      `json:"name"`
	Phone               string      `json:"phone"`
	Attendance          Attendance  `json:"attendance"`
	GuestsCount         GuestsCount `json:"guestsCount"`
	DietaryRestrictions DietarySet  `json:"dietaryRestrictions"`
	OtherDietary        string      `json:"otherDietary"`
	Message             string      `json:"message"`
}

// NewSubmission returns the initial state: nothing chosen, one guest.
func NewSubmission() Submission {
	return Submission{
		GuestsCount:         GuestsOne,
		DietaryRestrictions: DietarySet{},
	}
}

// Trimmed returns a copy with surrounding whitespace removed from text fields
// and an unset guest count defaulted to "1".
func (s Submission) Trimmed() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Attendance = Attendance(strings.TrimSpace(string(s.Attendance)))
	s.GuestsCount = GuestsCount(strings.TrimSpace(string(s.GuestsCount)))
	if s.GuestsCount == "" {
		s.GuestsCount = GuestsOne
	}
	s.OtherDietary = strings.TrimSpace(s.OtherDietary)
	s.Message = strings.TrimSpace(s.Message)
	if s.DietaryRestrictions == nil {
		s.DietaryRestrictions = DietarySet{}
	}
	return s
}

// Response is one stored RSVP as returned by the hosted function.
type Response struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Attendance          string    `json:"attendance"`
	GuestsCount         int       `json:"guests_count"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	OtherDietary        string    `json:"other_dietary"`
	Message             string    `json:"message"`
	CreatedAt           Timestamp `json:"created_at"`
}

func (r Response) Attending() bool {
	return r.Attendance == string(AttendanceYes)
}

// Guests is the party size counted for this response; an absent count means one.
func (r Response) Guests() int {
	if r.GuestsCount <= 0 {
		return 1
	}
	return r.GuestsCount
}
