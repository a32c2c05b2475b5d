package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ryuseikaiz/Ichu-Database/internal/catalog"
)

type listOptions struct {
	search    string
	category  string
	sort      string
	direction string
	density   string
	page      int
}

func newListCmd(app *App) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cards",
		Long: `List cards, filtered, sorted and paged.

Search matches the card name and both skills. Categories are the skill
types: score, perfect, healer, wild, pop, cool, support, other or all.

Examples:
  ichu list --sort wild
  ichu list --search kururugi --density grid
  ichu list --category healer --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vs, err := app.viewState(cmd, opts)
			if err != nil {
				return err
			}

			if err := app.coord.Refresh(cmd.Context()); err != nil {
				return &displayError{msg: "Could not connect to server. Make sure the backend is running.", err: err}
			}
			cards := app.coord.Collection().Cards()
			for _, fb := range catalog.Fallbacks(cards) {
				app.log.Debug("Stat read as fallback", "card_id", fb.CardID, "stat", fb.Key, "raw", fb.Raw, "value", fb.Value)
			}

			view := catalog.Apply(cards, vs)
			vs.Page = catalog.ClampPage(vs.Page, catalog.TotalPages(len(view), vs.PageSize()))
			items, totalPages := catalog.Page(view, vs.Page, vs.PageSize())

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No cards found.")
				return nil
			}

			offset := (vs.Page - 1) * vs.PageSize()
			width := terminalWidth(out)
			if vs.Density == catalog.DensityGrid {
				renderGrid(out, items, offset, width)
			} else {
				renderTable(out, items, offset, width)
				fmt.Fprintln(out)
			}
			renderFooter(out, vs.Page, totalPages, len(view))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.search, "search", "s", "", "Search names and skills")
	f.StringVarP(&opts.category, "category", "c", "", "Skill category filter")
	f.StringVar(&opts.sort, "sort", "", "Sort key: wild, pop, cool or total")
	f.StringVar(&opts.direction, "dir", "", "Sort direction: asc or desc")
	f.StringVarP(&opts.density, "density", "d", "", "Layout: table (50 per page) or grid (24 per page)")
	f.IntVarP(&opts.page, "page", "p", 1, "Page number")
	return cmd
}

// viewState starts from the configured view and applies the flags given.
func (a *App) viewState(cmd *cobra.Command, opts listOptions) (catalog.ViewState, error) {
	vs := catalog.DefaultView()
	v := a.cfg.View
	flags := cmd.Flags()

	pick := func(flag, flagValue, configured string) string {
		if flags.Changed(flag) {
			return flagValue
		}
		return configured
	}

	var err error
	if s := pick("sort", opts.sort, v.SortKey); s != "" {
		if vs.SortKey, err = catalog.ParseSortKey(s); err != nil {
			return vs, err
		}
	}
	if s := pick("dir", opts.direction, v.Direction); s != "" {
		if vs.Direction, err = catalog.ParseDirection(s); err != nil {
			return vs, err
		}
	}
	if s := pick("density", opts.density, v.Density); s != "" {
		if vs.Density, err = catalog.ParseDensity(s); err != nil {
			return vs, err
		}
	}
	if s := pick("category", opts.category, v.Category); s != "" {
		if vs.Category, err = catalog.ParseCategory(s); err != nil {
			return vs, err
		}
	}
	vs.Search = opts.search
	vs.Page = opts.page
	return vs, nil
}
