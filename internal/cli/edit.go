package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/editor"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

var errLoginRequired = errors.New("Please login to make changes. Run 'ichu login' first.") //nolint:staticcheck // user-facing sentence

type editOptions struct {
	name       string
	url        string
	unidolized string
	idolized   string
	skillName  string
	skillDesc  string
	leaderName string
	leaderDesc string
	stats      map[domain.StatKey]*string
}

func newEditCmd(app *App) *cobra.Command {
	opts := editOptions{stats: make(map[domain.StatKey]*string)}

	cmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Edit a card",
		Long: `Edit a card. Only the fields given as flags change.

The change shows at once and is undone if the server refuses it.

Examples:
  ichu edit card_abc --wild 3,201 --pop 2,980 --cool 3,050
  ichu edit card_abc --skill-desc "Score is increased by 10%"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.gate.CanMutate() {
				return errLoginRequired
			}
			if !opts.anySet(cmd) {
				return errors.New("nothing to change: pass at least one field flag")
			}

			if err := app.coord.Refresh(cmd.Context()); err != nil {
				return err
			}
			current, ok := app.coord.Collection().Get(args[0])
			if !ok {
				return apperr.NotFoundf("card %s not found", args[0])
			}

			edited, err := opts.apply(cmd, &current)
			if err != nil {
				return err
			}

			stored, err := app.coord.SubmitEdit(cmd.Context(), edited)
			if err != nil {
				return &displayError{msg: editor.UserMessage(err), err: err}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s.\n\n", bold.Sprint(stored.Name))
			renderCard(out, stored)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "Card name")
	f.StringVar(&opts.url, "url", "", "Wiki page URL")
	f.StringVar(&opts.unidolized, "unidolized", "", "Unidolized image URL")
	f.StringVar(&opts.idolized, "idolized", "", "Idolized image URL")
	f.StringVar(&opts.skillName, "skill-name", "", "Skill name")
	f.StringVar(&opts.skillDesc, "skill-desc", "", "Skill description")
	f.StringVar(&opts.leaderName, "leader-name", "", "Leader skill name")
	f.StringVar(&opts.leaderDesc, "leader-desc", "", "Leader skill description")
	for _, k := range domain.AttributeKeys {
		opts.stats[k] = f.String(string(k), "", statLabels[k]+" stat")
	}
	return cmd
}

var editFlags = []string{
	"name", "url", "unidolized", "idolized",
	"skill-name", "skill-desc", "leader-name", "leader-desc",
	"wild", "pop", "cool",
}

func (o *editOptions) anySet(cmd *cobra.Command) bool {
	for _, name := range editFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply builds the edited copy of c from the changed flags.
func (o *editOptions) apply(cmd *cobra.Command, c *domain.Card) (*domain.Card, error) {
	changed := cmd.Flags().Changed
	u := domain.Edit(c)

	if changed("name") {
		u.SetName(o.name)
	}
	if changed("url") {
		u.SetURL(o.url)
	}
	if changed("unidolized") || changed("idolized") {
		images := c.Images
		if changed("unidolized") {
			images.Unidolized = o.unidolized
		}
		if changed("idolized") {
			images.Idolized = o.idolized
		}
		u.SetImages(images.Unidolized, images.Idolized)
	}
	if changed("skill-name") || changed("skill-desc") {
		u.SetSkill(editSkill(c.Skill, changed("skill-name"), o.skillName, changed("skill-desc"), o.skillDesc))
	}
	if changed("leader-name") || changed("leader-desc") {
		u.SetLeaderSkill(editSkill(c.LeaderSkill, changed("leader-name"), o.leaderName, changed("leader-desc"), o.leaderDesc))
	}
	for _, k := range domain.AttributeKeys {
		if changed(string(k)) {
			u.SetStat(k, *o.stats[k])
		}
	}
	return u.Card()
}

func editSkill(cur *domain.Skill, setName bool, name string, setDesc bool, desc string) *domain.Skill {
	s := domain.Skill{}
	if cur != nil {
		s = *cur
	}
	if setName {
		s.Name = name
	}
	if setDesc {
		s.Description = desc
	}
	return &s
}
