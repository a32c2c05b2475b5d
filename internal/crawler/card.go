package crawler

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/importer"
)

// statNumber matches "3,201" or "3201". Grouped numbers need their commas.
var statNumber = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)

// ParseCard extracts a source card from a parsed card page.
func ParseCard(doc *html.Node, pageURL string) importer.SourceCard {
	card := importer.SourceCard{URL: pageURL, Name: "Unknown"}

	header := findFirst(doc, withClass("page-header__title"))
	if header == nil {
		header = findFirst(doc, withID("firstHeading"))
	}
	if header != nil {
		card.Name = strings.TrimSpace(textContent(header))
	}

	card.Images = parseImages(doc)
	card.Skill, card.LeaderSkill = parseSkills(doc)
	card.Stats, card.StatIcons = parseStats(doc)
	return card
}

func parseImages(doc *html.Node) domain.Images {
	var images domain.Images

	for _, tabber := range findAll(doc, withClass("tabber")) {
		for _, tab := range findAll(tabber, withClass("tabbertab")) {
			assignImage(&images, tab, strings.TrimSpace(getAttr(tab, "title")))
		}

		headers := findAll(tabber, withClass("wds-tabs__tab"))
		contents := findAll(tabber, withClass("wds-tab__content"))
		if len(headers) != len(contents) {
			continue
		}
		for i, h := range headers {
			title := strings.TrimSpace(getAttr(h, "data-hash"))
			if title == "" {
				title = strings.TrimSpace(textContent(h))
			}
			assignImage(&images, contents[i], title)
		}
	}

	if images == (domain.Images{}) {
		main := findFirst(doc, withClass("pi-image-thumbnail"))
		if main == nil {
			if infobox := findFirst(doc, withClass("infobox")); infobox != nil {
				main = findFirst(infobox, element("img"))
			}
		}
		images.Unidolized = imageURL(main)
	}
	return images
}

// assignImage stores the tab's image under the variant its title names.
func assignImage(images *domain.Images, container *html.Node, title string) {
	src := imageURL(findFirst(container, element("img")))
	if src == "" {
		if link := findFirst(container, elementWithClass("a", "image")); link != nil {
			src = getAttr(link, "href")
		}
	}
	if src == "" || strings.Contains(src, "/wiki/File:") {
		return
	}
	src = stripRevision(src)

	switch {
	case strings.Contains(title, "Unidolized") || strings.Contains(title, "Un-idolized"):
		images.Unidolized = src
	case strings.Contains(title, "Idolized"):
		images.Idolized = src
	case strings.Contains(title, "In-Game"):
		if images.Unidolized == "" {
			images.Unidolized = src
		}
	}
}

// parseSkills reads the skill tables. A description mentioning "Leader"
// or "Activates when" is the leader skill; later tables win.
func parseSkills(doc *html.Node) (skill, leader *domain.Skill) {
	for _, table := range findAll(doc, elementWithClass("table", "article")) {
		if findFirst(table, elementWithClass("tr", "article-table")) == nil {
			continue
		}

		var current *domain.Skill
		var extracted []*domain.Skill
		for _, row := range findAll(table, element("tr")) {
			if hasClass(row, "article-table") {
				if current != nil {
					extracted = append(extracted, current)
				}
				current = &domain.Skill{Name: strings.TrimSpace(textContent(row))}
				continue
			}
			if current == nil {
				continue
			}
			if text := strings.TrimSpace(textContent(row)); text != "" {
				if current.Description != "" {
					current.Description += "\n"
				}
				current.Description += text
			}
			if current.Icon == "" {
				current.Icon = imageURL(findFirst(row, element("img")))
			}
		}
		if current != nil {
			extracted = append(extracted, current)
		}

		for _, s := range extracted {
			if strings.Contains(s.Description, "Leader") || strings.Contains(s.Description, "Activates when") {
				leader = s
			} else {
				skill = s
			}
		}
	}
	return skill, leader
}

// statsTable finds the first table holding the stat rows.
func statsTable(doc *html.Node) *html.Node {
	tables := findAll(doc, element("table"))
	hasWildIcon := func(t *html.Node) bool {
		return findFirst(t, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "img" && strings.Contains(getAttr(n, "data-image-key"), "Wild")
		}) != nil
	}

	for _, marker := range []string{"Initial", "Max Lv."} {
		for _, t := range tables {
			if strings.Contains(textContent(t), marker) && hasWildIcon(t) {
				return t
			}
		}
	}
	return nil
}

func parseStats(doc *html.Node) (importer.SourceStats, domain.StatIcons) {
	var stats importer.SourceStats
	var icons domain.StatIcons

	table := statsTable(doc)
	if table == nil {
		return stats, icons
	}

	for _, img := range findAll(table, element("img")) {
		key := strings.ToLower(getAttr(img, "data-image-key"))
		switch {
		case strings.Contains(key, "wild"):
			icons.Wild = imageURL(img)
		case strings.Contains(key, "pop"):
			icons.Pop = imageURL(img)
		case strings.Contains(key, "cool"):
			icons.Cool = imageURL(img)
		}
	}

	idolized := false
	label := ""
	for _, row := range findAll(table, element("tr")) {
		text := strings.TrimSpace(textContent(row))

		if strings.Contains(text, "Un-idolized") || strings.Contains(text, "Unidolized") {
			idolized = false
		}
		if strings.Contains(text, "Idolized") && !strings.Contains(text, "Un-idolized") {
			idolized = true
		}

		switch {
		case strings.Contains(text, "Initial"):
			label = "initial"
		case strings.Contains(text, "Max Lv"):
			label = "max_lv"
		case strings.Contains(text, "Etoile"):
			label = "etoile"
		}

		values := rowNumbers(row)
		if len(values) < 3 || label == "" {
			continue
		}
		block := &importer.StatBlock{
			Wild: values[len(values)-3],
			Pop:  values[len(values)-2],
			Cool: values[len(values)-1],
		}

		switch {
		case idolized && label == "initial":
			stats.Idolized.Initial = block
		case idolized && label == "max_lv":
			stats.Idolized.MaxLv = block
		case idolized && label == "etoile":
			stats.Idolized.Etoile = block
		case label == "initial":
			stats.Unidolized.Initial = block
		case label == "max_lv":
			stats.Unidolized.MaxLv = block
		}
		label = ""
	}
	return stats, icons
}

// rowNumbers returns every number of at least three digits in the row's
// cells. Shorter numbers are levels or etoile ranks, not stats.
func rowNumbers(row *html.Node) []string {
	var values []string
	for _, cell := range findAll(row, func(n *html.Node) bool {
		return n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th")
	}) {
		for _, m := range statNumber.FindAllString(textContent(cell), -1) {
			if len(strings.ReplaceAll(m, ",", "")) >= 3 {
				values = append(values, m)
			}
		}
	}
	return values
}
