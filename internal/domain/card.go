package domain

import "time"

// StatKey names one of the three card attributes, or their sum.
type StatKey string

// Stat keys. StatTotal is derived and never stored.
const (
	StatWild  StatKey = "wild"
	StatPop   StatKey = "pop"
	StatCool  StatKey = "cool"
	StatTotal StatKey = "total"
)

// AttributeKeys lists the stored stat keys in display order.
var AttributeKeys = []StatKey{StatWild, StatPop, StatCool}

// Card is one collectible record in the catalog.
// Stats are kept as the text the wiki shows ("3,201"); parsing happens at read time.
type Card struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	URL         string    `json:"url,omitempty"`
	Images      Images    `json:"images"`
	Skill       *Skill    `json:"skill,omitempty"`
	LeaderSkill *Skill    `json:"leader_skill,omitempty"`
	Stats       Stats     `json:"stats"`
	StatIcons   StatIcons `json:"stat_icons"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Images holds the two art variants of a card.
type Images struct {
	Unidolized string `json:"unidolized,omitempty"`
	Idolized   string `json:"idolized,omitempty"`
}

// Display returns the preferred image: idolized art when present.
func (i Images) Display() string {
	if i.Idolized != "" {
		return i.Idolized
	}
	return i.Unidolized
}

// Skill is a named ability with free-text description.
type Skill struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Stats is the flattened single-stage stat block.
// An empty field means the stat was never recorded and reads as "0".
type Stats struct {
	Wild string `json:"wild" validate:"stat"`
	Pop  string `json:"pop" validate:"stat"`
	Cool string `json:"cool" validate:"stat"`
}

// Raw returns the stored text for key. Unknown keys and StatTotal return "".
func (s Stats) Raw(key StatKey) string {
	switch key {
	case StatWild:
		return s.Wild
	case StatPop:
		return s.Pop
	case StatCool:
		return s.Cool
	default:
		return ""
	}
}

// Normalized returns a copy with absent values replaced by "0".
func (s Stats) Normalized() Stats {
	if s.Wild == "" {
		s.Wild = "0"
	}
	if s.Pop == "" {
		s.Pop = "0"
	}
	if s.Cool == "" {
		s.Cool = "0"
	}
	return s
}

// Recorded reports whether any stat differs from "0".
// A card whose three stats are all "0" displays as not yet recorded.
func (s Stats) Recorded() bool {
	n := s.Normalized()
	return n.Wild != "0" || n.Pop != "0" || n.Cool != "0"
}

// StatIcons holds the icon URLs shown next to each attribute.
type StatIcons struct {
	Wild string `json:"wild,omitempty"`
	Pop  string `json:"pop,omitempty"`
	Cool string `json:"cool,omitempty"`
}

// StatsRecorded reports whether the card carries real stat values.
func (c *Card) StatsRecorded() bool {
	return c.Stats.Recorded()
}

// Touch updates the UpdatedAt timestamp.
func (c *Card) Touch() {
	c.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (c *Card) InitTimestamps() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Clone returns a deep copy. Skill pointers are not shared with the original.
func (c Card) Clone() Card {
	if c.Skill != nil {
		s := *c.Skill
		c.Skill = &s
	}
	if c.LeaderSkill != nil {
		s := *c.LeaderSkill
		c.LeaderSkill = &s
	}
	return c
}

// ApplyEdit replaces the editable fields of c with those of edited.
// Identity and timestamps are left untouched.
func (c *Card) ApplyEdit(edited *Card) {
	e := edited.Clone()
	c.Name = e.Name
	c.URL = e.URL
	c.Images = e.Images
	c.Skill = e.Skill
	c.LeaderSkill = e.LeaderSkill
	c.Stats = e.Stats
	c.StatIcons = e.StatIcons
}
