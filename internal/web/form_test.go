package web

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

func TestParseForm(t *testing.T) {
	f := ParseForm(url.Values{
		"name":                {" Иван "},
		"phone":               {"+7"},
		"attendance":          {"yes"},
		"dietaryRestrictions": {"meat", "kosher", "meat", ""},
	})

	assert.Equal(t, rsvp.GuestsOne, f.GuestsCount)
	assert.Equal(t, []rsvp.DietaryTag{rsvp.DietaryMeat}, f.Dietary.Tags())
	assert.True(t, f.Attending())
	assert.True(t, f.ShowsOtherDietary())
}

func TestForm_Toggle(t *testing.T) {
	f := NewForm()

	f.Toggle(rsvp.DietaryFish)
	assert.True(t, f.Dietary.Has(rsvp.DietaryFish))

	f.Toggle("kosher")
	assert.Equal(t, 1, f.Dietary.Len())

	f.Toggle(rsvp.DietaryFish)
	assert.Equal(t, 0, f.Dietary.Len())
}

func TestForm_Reset(t *testing.T) {
	f := ParseForm(url.Values{"name": {"Иван"}, "guestsCount": {"2"}, "dietaryRestrictions": {"fish"}})

	f.Reset()

	assert.Equal(t, NewForm(), f)
}

func TestForm_OtherDietaryHiddenWhenDeclining(t *testing.T) {
	f := ParseForm(url.Values{"attendance": {"no"}, "dietaryRestrictions": {"fish"}})

	assert.False(t, f.ShowsOtherDietary())
}

func TestForm_SubmissionUntouchedGuestsCount(t *testing.T) {
	f := NewForm()
	f.Name = "  Иван  "
	f.Phone = "+7 999"
	f.Attendance = rsvp.AttendanceYes

	sub := f.Submission()
	require.NoError(t, sub.Validate())
	assert.Equal(t, "Иван", sub.Name)

	data, err := json.Marshal(sub)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1", decoded["guestsCount"])
	assert.Equal(t, []any{}, decoded["dietaryRestrictions"])
}

func TestForm_SubmissionDoesNotShareDietarySet(t *testing.T) {
	f := NewForm()
	f.Toggle(rsvp.DietaryMeat)

	sub := f.Submission()
	f.Toggle(rsvp.DietaryFish)

	assert.False(t, sub.DietaryRestrictions.Has(rsvp.DietaryFish))
}
