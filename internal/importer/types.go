// Package importer turns the crawler's card file into catalog records.
package importer

import "github.com/Ryuseikaiz/Ichu-Database/internal/domain"

// StatBlock is one row of the wiki stats table.
type StatBlock struct {
	Wild string `json:"wild"`
	Pop  string `json:"pop"`
	Cool string `json:"cool"`
}

// UnidolizedStats holds the stat rows shown before idolizing.
type UnidolizedStats struct {
	Initial *StatBlock `json:"initial,omitempty"`
	MaxLv   *StatBlock `json:"max_lv,omitempty"`
}

// IdolizedStats holds the stat rows shown after idolizing.
type IdolizedStats struct {
	Initial *StatBlock `json:"initial,omitempty"`
	MaxLv   *StatBlock `json:"max_lv,omitempty"`
	Etoile  *StatBlock `json:"etoile,omitempty"`
}

// SourceStats is the per-stage stat table of a source card.
type SourceStats struct {
	Unidolized UnidolizedStats `json:"unidolized"`
	Idolized   IdolizedStats   `json:"idolized"`
}

// SourceCard is a card as written by the crawler.
type SourceCard struct {
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	Images      domain.Images    `json:"images"`
	Skill       *domain.Skill    `json:"skill,omitempty"`
	LeaderSkill *domain.Skill    `json:"leader_skill,omitempty"`
	Stats       SourceStats      `json:"stats"`
	StatIcons   domain.StatIcons `json:"stat_icons"`
}
