package rsvp

import (
	"encoding/json"
	"slices"
	"strings"
)

// DietaryTag is one dietary preference checkbox value.
type DietaryTag string

const (
	DietaryVegetarian DietaryTag = "vegetarian"
	DietaryMeat       DietaryTag = "meat"
	DietaryFish       DietaryTag = "fish"
	DietaryAllergies  DietaryTag = "allergies"
)

// FormTags are the tags the invitation form offers, in display order.
var FormTags = []DietaryTag{DietaryVegetarian, DietaryMeat, DietaryFish, DietaryAllergies}

// DietarySet is an unordered set of dietary tags. Unknown tags are kept so
// that the read side can still show them.
type DietarySet map[DietaryTag]struct{}

// NewDietarySet builds a set from tags, collapsing duplicates.
func NewDietarySet(tags ...DietaryTag) DietarySet {
	s := make(DietarySet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Toggle removes tag when present and adds it otherwise.
func (s *DietarySet) Toggle(tag DietaryTag) {
	if *s == nil {
		*s = DietarySet{}
	}
	if _, ok := (*s)[tag]; ok {
		delete(*s, tag)
		return
	}
	(*s)[tag] = struct{}{}
}

func (s *DietarySet) Add(tag DietaryTag) {
	if *s == nil {
		*s = DietarySet{}
	}
	(*s)[tag] = struct{}{}
}

func (s DietarySet) Has(tag DietaryTag) bool {
	_, ok := s[tag]
	return ok
}

func (s DietarySet) Len() int {
	return len(s)
}

// Tags lists the form tags in display order followed by any other tags sorted.
func (s DietarySet) Tags() []DietaryTag {
	out := make([]DietaryTag, 0, len(s))
	for _, t := range FormTags {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	var extra []DietaryTag
	for t := range s {
		if !slices.Contains(FormTags, t) {
			extra = append(extra, t)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (s DietarySet) Strings() []string {
	tags := s.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func (s DietarySet) Equal(other DietarySet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array, never null.
func (s DietarySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *DietarySet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	set := make(DietarySet, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			set[DietaryTag(t)] = struct{}{}
		}
	}
	*s = set
	return nil
}

const noRestrictionsLabel = "Нет ограничений"

var dietaryLabels = map[string]string{
	string(DietaryVegetarian): "Вегетарианское меню",
	string(DietaryMeat):       "Предпочитаю мясо",
	string(DietaryFish):       "Предпочитаю рыбу",
	string(DietaryAllergies):  "Аллергии",
	"vegan":                   "Веганское меню",
	"gluten-free":             "Без глютена",
	"lactose-free":            "Без лактозы",
}

// DietaryLabel maps a tag to its display label; unknown tags pass through.
func DietaryLabel(tag string) string {
	if label, ok := dietaryLabels[tag]; ok {
		return label
	}
	return tag
}

// DietaryText renders the dietary line of a response card.
func DietaryText(tags []string, other string) string {
	if len(tags) == 0 {
		return noRestrictionsLabel
	}
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = DietaryLabel(t)
	}
	text := strings.Join(labels, ", ")
	if other != "" {
		text += " (" + other + ")"
	}
	return text
}
