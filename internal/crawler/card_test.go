package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/importer"
)

const cardPage = `<html><body>
<h1 class="page-header__title"> (Starry Night) Aoi Sensou LE </h1>
<div class="tabber">
  <div class="wds-tabs__tab" data-hash="Un-idolized">Un-idolized</div>
  <div class="wds-tabs__tab" data-hash="Idolized">Idolized</div>
  <div class="wds-tab__content"><img data-src="https://static.wikia/aoi_u.png/revision/latest?cb=1"></div>
  <div class="wds-tab__content"><a class="image" href="https://static.wikia/aoi_i.png/revision/latest"></a></div>
</div>
<table class="article">
  <tr class="article-table"><th>Starlight Shower</th></tr>
  <tr><td><img src="https://static.wikia/skill.png/revision/1">Score is increased by 12%.</td></tr>
</table>
<table class="article">
  <tr class="article-table"><th>Wild Leader</th></tr>
  <tr><td>Leader skill: Wild attribute is boosted by 8%.</td></tr>
</table>
<table>
  <tr><th></th><th><img data-image-key="Wild_icon.png" src="https://static.wikia/wild.png/revision/x"></th>
      <th><img data-image-key="Pop_icon.png" src="https://static.wikia/pop.png"></th>
      <th><img data-image-key="Cool_icon.png" src="https://static.wikia/cool.png"></th></tr>
  <tr><th colspan="4">Un-idolized</th></tr>
  <tr><td>Initial</td><td>1,020</td><td>980</td><td>1,100</td></tr>
  <tr><td>Max Lv. 60</td><td>2,040</td><td>1,960</td><td>2,200</td></tr>
  <tr><th colspan="4">Idolized</th></tr>
  <tr><td>Initial</td><td>1,530</td><td>1,470</td><td>1,650</td></tr>
  <tr><td>Max Lv. 80</td><td>3,060</td><td>2,940</td><td>3,300</td></tr>
  <tr><td>Etoile +5</td><td>3,201</td><td>2,999</td><td>4,100</td></tr>
</table>
</body></html>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParseCard(t *testing.T) {
	card := ParseCard(parse(t, cardPage), "https://ichu.fandom.com/wiki/Aoi_LE")

	assert.Equal(t, "(Starry Night) Aoi Sensou LE", card.Name)
	assert.Equal(t, "https://ichu.fandom.com/wiki/Aoi_LE", card.URL)
	assert.Equal(t, domain.Images{
		Unidolized: "https://static.wikia/aoi_u.png",
		Idolized:   "https://static.wikia/aoi_i.png",
	}, card.Images)

	require.NotNil(t, card.Skill)
	assert.Equal(t, "Starlight Shower", card.Skill.Name)
	assert.Equal(t, "Score is increased by 12%.", card.Skill.Description)
	assert.Equal(t, "https://static.wikia/skill.png", card.Skill.Icon)

	require.NotNil(t, card.LeaderSkill)
	assert.Equal(t, "Wild Leader", card.LeaderSkill.Name)

	assert.Equal(t, &importer.StatBlock{Wild: "1,020", Pop: "980", Cool: "1,100"}, card.Stats.Unidolized.Initial)
	assert.Equal(t, &importer.StatBlock{Wild: "2,040", Pop: "1,960", Cool: "2,200"}, card.Stats.Unidolized.MaxLv)
	assert.Equal(t, &importer.StatBlock{Wild: "3,060", Pop: "2,940", Cool: "3,300"}, card.Stats.Idolized.MaxLv)
	assert.Equal(t, &importer.StatBlock{Wild: "3,201", Pop: "2,999", Cool: "4,100"}, card.Stats.Idolized.Etoile)

	assert.Equal(t, domain.StatIcons{
		Wild: "https://static.wikia/wild.png",
		Pop:  "https://static.wikia/pop.png",
		Cool: "https://static.wikia/cool.png",
	}, card.StatIcons)
}

func TestParseCard_MissingParts(t *testing.T) {
	card := ParseCard(parse(t, `<html><body><h1 id="firstHeading">Bare GR</h1>
		<div class="infobox"><img src="https://static.wikia/main.png/revision/2"></div></body></html>`), "u")

	assert.Equal(t, "Bare GR", card.Name)
	assert.Equal(t, "https://static.wikia/main.png", card.Images.Unidolized)
	assert.Nil(t, card.Skill)
	assert.Nil(t, card.LeaderSkill)
	assert.Nil(t, card.Stats.Idolized.Etoile)
}

func TestParseCard_OldStyleTabber(t *testing.T) {
	card := ParseCard(parse(t, `<html><body>
		<div class="tabber">
		  <div class="tabbertab" title="In-Game"><img src="https://img/ingame.png"></div>
		  <div class="tabbertab" title=" Idolized "><img src="https://img/idol.png"></div>
		</div></body></html>`), "u")

	assert.Equal(t, "Unknown", card.Name)
	assert.Equal(t, "https://img/ingame.png", card.Images.Unidolized)
	assert.Equal(t, "https://img/idol.png", card.Images.Idolized)
}

func TestRowNumbers(t *testing.T) {
	row := findFirst(parse(t, `<table><tr><td>Etoile +5</td><td>12345</td><td>2,999</td><td>60</td><td>4,100</td></tr></table>`), element("tr"))
	require.NotNil(t, row)

	assert.Equal(t, []string{"12345", "2,999", "4,100"}, rowNumbers(row))
}
