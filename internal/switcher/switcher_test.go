package switcher

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

const page = `<!DOCTYPE html><html><body>
<nav>
  <a href="/" data-en="Home" data-rw="Ahabanza">Home</a>
  <button id="lang-en" class="lang-btn" data-lang="en">EN</button>
  <button id="lang-rw" class="lang-btn">RW</button>
  <button class="mobile-lang-btn bg-gray-200 text-gray-700" data-lang="rw">RW</button>
  <button class="mobile-lang-btn bg-green-600 text-white active" data-lang="en">EN</button>
</nav>
<h2 id="title" data-en="Fresh products" data-rw="Ibicuruzwa bishya">Fresh products</h2>
<input id="name" data-en="Your name" data-rw="Amazina yawe">
<textarea id="msg" data-en="Message" data-rw="Ubutumwa"></textarea>
<span id="half" data-en="only english">keep</span>
<input id="search-bar" data-placeholder-rw="Shakisha ibicuruzwa...">
</body></html>`

func parse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestApplyShowsTextOfChosenLocale(t *testing.T) {
	for _, l := range i18n.Locales() {
		doc := parse(t, page)
		Apply(doc, l)
		doc.Find("[data-rw][data-en]").Each(func(_ int, s *goquery.Selection) {
			want := s.AttrOr(l.Attr(), "")
			if tag := goquery.NodeName(s); tag == "input" || tag == "textarea" {
				require.Equal(t, want, s.AttrOr("placeholder", ""), "placeholder of %s", tag)
				return
			}
			require.Equal(t, want, s.Text())
		})
		require.Equal(t, string(l), doc.Find("html").AttrOr("lang", ""))
	}
}

func TestApplyLeavesUnpairedElementsAlone(t *testing.T) {
	doc := parse(t, page)
	Apply(doc, i18n.RW)
	require.Equal(t, "keep", doc.Find("#half").Text())
}

func TestApplyMarksOnlyMatchingControlsActive(t *testing.T) {
	doc := parse(t, page)
	Apply(doc, i18n.RW)

	require.False(t, doc.Find("#lang-en").HasClass("active"))
	require.True(t, doc.Find("#lang-rw").HasClass("active"), "id fallback should identify the rw control")

	rw := doc.Find(`.mobile-lang-btn[data-lang="rw"]`)
	require.True(t, rw.HasClass("active"))
	require.True(t, rw.HasClass("bg-green-600"))
	require.False(t, rw.HasClass("bg-gray-200"))

	en := doc.Find(`.mobile-lang-btn[data-lang="en"]`)
	require.False(t, en.HasClass("active"))
	require.False(t, en.HasClass("text-white"))
	require.True(t, en.HasClass("mobile-lang-btn"), "unrelated classes must survive")
	require.True(t, en.HasClass("text-gray-700"))
}

func TestSearchPlaceholderUsesDataAttributeThenDefault(t *testing.T) {
	doc := parse(t, page)
	Apply(doc, i18n.RW)
	require.Equal(t, "Shakisha ibicuruzwa...", doc.Find("#search-bar").AttrOr("placeholder", ""))

	doc = parse(t, page)
	Apply(doc, i18n.EN)
	require.Equal(t, "Search products...", doc.Find("#search-bar").AttrOr("placeholder", ""))

	plan := Build(i18n.RW, Page{Search: &SearchBox{}})
	require.Equal(t, "Shakisha...", plan.SearchPlaceholder)
}

func TestBuildIsPure(t *testing.T) {
	p := Page{
		Elements: []Element{
			{Tag: "p", Texts: map[i18n.Locale]string{i18n.EN: "Milk", i18n.RW: "Amata"}},
			{Tag: "input", Texts: map[i18n.Locale]string{i18n.EN: "Name"}},
		},
		Controls: []Control{{Locale: i18n.EN}, {Locale: i18n.RW, Mobile: true}},
	}
	plan := Build(i18n.RW, p)
	require.Equal(t, []TextUpdate{
		{Index: 0, Value: "Amata"},
		{Index: 1, Placeholder: true, Value: ""},
	}, plan.Texts)
	require.False(t, plan.Controls[0].Active)
	require.True(t, plan.Controls[1].Active)
	require.False(t, plan.HasSearch)

	require.Equal(t, i18n.Source, Build("fr", p).Locale, "unknown locales render as source")
}

func TestControllerPersistsAcrossReload(t *testing.T) {
	store := &MemoryStore{}
	c := New(store)
	require.Equal(t, i18n.EN, c.Locale(), "first load defaults to the source locale")

	require.NoError(t, c.SetLocale(i18n.RW))
	v, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, "rw", v)

	reloaded := New(store)
	require.Equal(t, i18n.RW, reloaded.Locale())

	require.ErrorIs(t, reloaded.SetLocale("fr"), i18n.ErrUnsupportedLocale)
	require.Equal(t, i18n.RW, reloaded.Locale())
}

func TestControllerIgnoresCorruptStoredValue(t *testing.T) {
	store := &MemoryStore{}
	_ = store.Save("klingon")
	require.Equal(t, i18n.EN, New(store).Locale())
}
