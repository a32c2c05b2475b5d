package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Ryuseikaiz/Ichu-Database/internal/catalog"
	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

const (
	defaultWidth = 100
	gridCell     = 36
	gridGap      = 2
	barWidth     = 20
)

var (
	bold   = color.New(color.Bold)
	faint  = color.New(color.Faint)
	label  = color.New(color.FgCyan)
	badge  = color.New(color.FgHiMagenta, color.Bold)
	header = color.New(color.Bold, color.Underline)

	statColors = map[domain.StatKey]*color.Color{
		domain.StatWild: color.New(color.FgRed),
		domain.StatPop:  color.New(color.FgYellow),
		domain.StatCool: color.New(color.FgBlue),
	}

	statLabels = map[domain.StatKey]string{
		domain.StatWild: "Wild",
		domain.StatPop:  "Pop",
		domain.StatCool: "Cool",
	}
)

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < gridCell {
		return defaultWidth
	}
	return width
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// truncate shortens s to n runes, ending in an ellipsis when cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runeLen(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if d := n - runeLen(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padLeft(s string, n int) string {
	if d := n - runeLen(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}

// statText returns the stored text of key, "0" when absent.
func statText(stats domain.Stats, key domain.StatKey) string {
	return stats.Normalized().Raw(key)
}

// renderTable writes cards as rows. offset is the rank of the first card
// minus one.
func renderTable(w io.Writer, cards []domain.Card, offset, width int) {
	const (
		rankW = 4
		catW  = 8
		statW = 7
		totW  = 8
	)
	nameW := max(width-rankW-catW-3*statW-totW-6, 16)

	cols := []string{
		padLeft("#", rankW),
		padRight("Name", nameW),
		padRight("Skill", catW),
		padLeft("Wild", statW),
		padLeft("Pop", statW),
		padLeft("Cool", statW),
		padLeft("Total", totW),
	}
	for i, c := range cols {
		cols[i] = header.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(cols, " "))

	for i := range cards {
		c := &cards[i]
		recorded := c.StatsRecorded()

		cells := []string{
			faint.Sprint(padLeft(fmt.Sprint(offset+i+1), rankW)),
			padRight(truncate(c.Name, nameW), nameW),
			padRight(string(catalog.Classify(c.Skill)), catW),
		}
		for _, k := range domain.AttributeKeys {
			cell := padLeft(statText(c.Stats, k), statW)
			if recorded {
				cell = statColors[k].Sprint(cell)
			} else {
				cell = faint.Sprint(cell)
			}
			cells = append(cells, cell)
		}
		total := padLeft(catalog.Format(c.Stats), totW)
		if recorded {
			total = bold.Sprint(total)
		} else {
			total = faint.Sprint(total)
		}
		cells = append(cells, total)

		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

// renderGrid writes cards as fixed-width tiles, as many per row as fit.
func renderGrid(w io.Writer, cards []domain.Card, offset, width int) {
	perRow := max(1, (width+gridGap)/(gridCell+gridGap))

	for start := 0; start < len(cards); start += perRow {
		row := cards[start:min(start+perRow, len(cards))]

		tiles := make([][]string, len(row))
		for i := range row {
			tiles[i] = tile(&row[i], offset+start+i+1)
		}

		for line := range len(tiles[0]) {
			parts := make([]string, len(tiles))
			for i := range tiles {
				parts[i] = tiles[i][line]
			}
			fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, strings.Repeat(" ", gridGap)), " "))
		}
		fmt.Fprintln(w)
	}
}

// tile renders one grid cell. Every line is gridCell columns wide before
// coloring so rows line up.
func tile(c *domain.Card, rank int) []string {
	title := truncate(fmt.Sprintf("%d. %s", rank, c.Name), gridCell)

	status := padRight("stats not recorded", gridCell)
	if c.StatsRecorded() {
		status = badge.Sprint("Etoile +5") + strings.Repeat(" ", gridCell-len("Etoile +5"))
	} else {
		status = faint.Sprint(status)
	}

	lines := []string{
		bold.Sprint(padRight(title, gridCell)),
		status,
	}
	for _, k := range domain.AttributeKeys {
		lines = append(lines, statBar(k, statText(c.Stats, k), gridCell-12))
	}

	skill := "-"
	if c.Skill != nil && c.Skill.Name != "" {
		skill = c.Skill.Name
	}
	cat := string(catalog.Classify(c.Skill))
	lines = append(lines, label.Sprint(padRight(truncate(skill, gridCell-runeLen(cat)-1), gridCell-runeLen(cat)))+faint.Sprint(cat))
	return lines
}

// statBar renders "Wild ██████░░░░ 3,201" with a bar of width cells,
// full at catalog.StatBarMax.
func statBar(key domain.StatKey, raw string, width int) string {
	filled := catalog.BarPercent(raw, catalog.StatBarMax) * width / 100
	bar := statColors[key].Sprint(strings.Repeat("█", filled)) + faint.Sprint(strings.Repeat("░", width-filled))
	return padRight(statLabels[key], 5) + bar + " " + padLeft(raw, 6)
}

// renderCard writes the full detail view of one card.
func renderCard(w io.Writer, c *domain.Card) {
	fmt.Fprintln(w, bold.Sprint(c.Name))
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s %s\n", label.Sprint(padRight(name+":", 8)), value)
		}
	}
	field("ID", c.ID)
	field("Page", c.URL)
	field("Image", c.Images.Display())

	fmt.Fprintln(w)
	if c.StatsRecorded() {
		fmt.Fprintln(w, badge.Sprint("Etoile +5"))
	} else {
		fmt.Fprintln(w, faint.Sprint("Stats not yet recorded"))
	}
	for _, k := range domain.AttributeKeys {
		fmt.Fprintln(w, statBar(k, statText(c.Stats, k), barWidth))
	}
	fmt.Fprintf(w, "%s %s\n", padRight("Total", 5), bold.Sprint(catalog.Format(c.Stats)))

	skill := func(title string, s *domain.Skill) {
		if s == nil {
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", label.Sprint(title+":"), bold.Sprint(s.Name))
		if s.Description != "" {
			fmt.Fprintln(w, s.Description)
		}
	}
	skill("Skill", c.Skill)
	if c.Skill != nil {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("Type:"), catalog.Classify(c.Skill))
	}
	skill("Leader skill", c.LeaderSkill)
}

// renderFooter writes the page indicator.
func renderFooter(w io.Writer, page, totalPages, count int) {
	noun := "cards"
	if count == 1 {
		noun = "card"
	}
	fmt.Fprintln(w, faint.Sprintf("Page %d of %d · %s %s", page, totalPages, catalog.FormatInt(count), noun))
}
