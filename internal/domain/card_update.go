package domain

import "fmt"

// CardUpdater builds an edited copy of a card through named field setters.
// The source card is never modified.
type CardUpdater struct {
	card Card
	err  error
}

// Edit starts an update of c.
func Edit(c *Card) *CardUpdater {
	return &CardUpdater{card: c.Clone()}
}

// SetName sets the display name.
func (u *CardUpdater) SetName(name string) *CardUpdater {
	u.card.Name = name
	return u
}

// SetURL sets the source page URL.
func (u *CardUpdater) SetURL(url string) *CardUpdater {
	u.card.URL = url
	return u
}

// SetImages sets both art variants.
func (u *CardUpdater) SetImages(unidolized, idolized string) *CardUpdater {
	u.card.Images = Images{Unidolized: unidolized, Idolized: idolized}
	return u
}

// SetSkill replaces the skill. A nil skill clears it.
func (u *CardUpdater) SetSkill(s *Skill) *CardUpdater {
	u.card.Skill = cloneSkill(s)
	return u
}

// SetSkillDescription sets the skill description, creating the skill if absent.
func (u *CardUpdater) SetSkillDescription(desc string) *CardUpdater {
	if u.card.Skill == nil {
		u.card.Skill = &Skill{}
	}
	u.card.Skill.Description = desc
	return u
}

// SetLeaderSkill replaces the leader skill. A nil skill clears it.
func (u *CardUpdater) SetLeaderSkill(s *Skill) *CardUpdater {
	u.card.LeaderSkill = cloneSkill(s)
	return u
}

// SetStat sets one attribute. StatTotal and unknown keys record an error
// that Card reports.
func (u *CardUpdater) SetStat(key StatKey, value string) *CardUpdater {
	switch key {
	case StatWild:
		u.card.Stats.Wild = value
	case StatPop:
		u.card.Stats.Pop = value
	case StatCool:
		u.card.Stats.Cool = value
	default:
		if u.err == nil {
			u.err = fmt.Errorf("stat %q is not editable", key)
		}
	}
	return u
}

// Card returns the edited copy, or the first setter error.
func (u *CardUpdater) Card() (*Card, error) {
	if u.err != nil {
		return nil, u.err
	}
	c := u.card.Clone()
	return &c, nil
}

func cloneSkill(s *Skill) *Skill {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
