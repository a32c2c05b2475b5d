package crawler

import (
	"context"
	"slices"
	"strings"
)

// categoryPath lists every card range page.
const categoryPath = "/wiki/Category:Cards"

// urlFixes rewrites wiki links known to point at the wrong page.
var urlFixes = map[string]string{
	"/wiki/(Chinese_Zodiac_Scout)_Li_Chaoyang_LE/G":                "/wiki/(Chinese_Zodiac_Scout)_Li_Chaoyang_LE/GR",
	"/wiki/(Kirameki_%E2%98%86_Sweet_Surprise)_Orihiro_Ryugu_N/HN": "/wiki/(Kirameki_☆_Sweet_Surprise)_Tatsuomi_Ryugu_N/HN",
	"/wiki/(Kirameki_☆_Sweet_Surprise)_Orihiro_Ryugu_N/HN":         "/wiki/(Kirameki_☆_Sweet_Surprise)_Tatsuomi_Ryugu_N/HN",
	"/wiki/(fleur)_Kokoro_Hanabusa_LE/GR":                          "/wiki/(fleur)_Kokoro_Hanabusa_GR",
	"/wiki/(3rd_Anniversary_Scout)_Akio_Kusakabe_LE/GR":            "/wiki/(3rd_Anniversary_Scout)_Akio_Tobikura_LE/GR",
	"/wiki/(2018_I-Chu_Awards_Blanc)_Seya_Aido_GR":                 "/wiki/(2018_I-Chu_Awards_Blanc)_Seiya_Aido_GR",
	"/wiki/(Best_Album_Ai_Version)_Chu_Version)_Kuro_Yakaku_GR":    "/wiki/(Best_Album_Chu_Version)_Kuro_Yakaku_GR",
}

// CardLinks walks the category page and its range pages and returns the
// absolute URLs of every LE or GR card, in the order first seen.
func (c *Crawler) CardLinks(ctx context.Context) ([]string, error) {
	category, err := c.fetch(ctx, c.baseURL+categoryPath)
	if err != nil {
		return nil, err
	}

	var ranges []string
	for _, member := range findAll(category, withClass("category-page__member-link")) {
		href := getAttr(member, "href")
		if href != "" && !strings.Contains(href, "Category:") {
			ranges = append(ranges, c.baseURL+href)
		}
	}
	c.logger.Info("Found range pages", "count", len(ranges))

	var links []string
	for _, rangeURL := range ranges {
		page, err := c.fetch(ctx, rangeURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Skipping range page", "url", rangeURL, "error", err)
			continue
		}

		for _, table := range findAll(page, elementWithClass("table", "article-table")) {
			for _, cell := range findAll(table, element("td")) {
				for _, a := range findAll(cell, element("a")) {
					link, ok := c.cardLink(getAttr(a, "href"), getAttr(a, "title"))
					if ok && !slices.Contains(links, link) {
						links = append(links, link)
					}
				}
			}
		}
	}
	return links, nil
}

// cardLink filters and repairs one range-table link.
func (c *Crawler) cardLink(href, title string) (string, bool) {
	if href == "" || strings.Contains(href, "/wiki/File:") || strings.Contains(href, "action=edit") {
		return "", false
	}
	if fixed, ok := urlFixes[href]; ok {
		c.logger.Debug("Fixing URL", "from", href, "to", fixed)
		href = fixed
	}
	if strings.HasPrefix(href, "http") {
		return "", false
	}
	if !strings.Contains(title, "LE") && !strings.Contains(title, "GR") {
		return "", false
	}
	return c.baseURL + href, true
}
