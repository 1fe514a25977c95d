package web

import (
	"net/url"
	"slices"
	"strings"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

// Form is the state of the RSVP form between renders.
type Form struct {
	Name         string
	Phone        string
	Attendance   rsvp.Attendance
	GuestsCount  rsvp.GuestsCount
	Dietary      rsvp.DietarySet
	OtherDietary string
	Message      string
}

func NewForm() Form {
	return Form{
		GuestsCount: rsvp.GuestsOne,
		Dietary:     rsvp.DietarySet{},
	}
}

// Reset returns the form to its initial state.
func (f *Form) Reset() {
	*f = NewForm()
}

// ParseForm reads a posted form. Dietary tags the form does not offer are ignored.
func ParseForm(v url.Values) Form {
	f := Form{
		Name:         v.Get("name"),
		Phone:        v.Get("phone"),
		Attendance:   rsvp.Attendance(strings.TrimSpace(v.Get("attendance"))),
		GuestsCount:  rsvp.GuestsCount(strings.TrimSpace(v.Get("guestsCount"))),
		Dietary:      rsvp.DietarySet{},
		OtherDietary: v.Get("otherDietary"),
		Message:      v.Get("message"),
	}
	if f.GuestsCount == "" {
		f.GuestsCount = rsvp.GuestsOne
	}
	for _, raw := range v["dietaryRestrictions"] {
		tag := rsvp.DietaryTag(strings.TrimSpace(raw))
		if slices.Contains(rsvp.FormTags, tag) {
			f.Dietary.Add(tag)
		}
	}
	return f
}

// Toggle flips one offered dietary tag. Unknown tags leave the form unchanged.
func (f *Form) Toggle(tag rsvp.DietaryTag) {
	if !slices.Contains(rsvp.FormTags, tag) {
		return
	}
	f.Dietary.Toggle(tag)
}

func (f Form) Attending() bool {
	return f.Attendance == rsvp.AttendanceYes
}

// ShowsOtherDietary reports whether the free-text dietary field is offered.
func (f Form) ShowsOtherDietary() bool {
	return f.Attending() && f.Dietary.Len() > 0
}

// Submission converts the form into the document sent to the hosted function.
func (f Form) Submission() rsvp.Submission {
	return rsvp.Submission{
		Name:                f.Name,
		Phone:               f.Phone,
		Attendance:          f.Attendance,
		GuestsCount:         f.GuestsCount,
		DietaryRestrictions: rsvp.NewDietarySet(f.Dietary.Tags()...),
		OtherDietary:        f.OtherDietary,
		Message:             f.Message,
	}.Trimmed()
}
