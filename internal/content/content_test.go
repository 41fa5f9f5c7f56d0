package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

func testSource() *Source {
	return NewSource(fstest.MapFS{
		"content/pages/en/about.md": {Data: []byte("---\ntitle: About us\nicon: fa-store\n---\n\nWe sell **fresh** food.\n\n<script>alert(1)</script>\n")},
		"content/pages/rw/about.md": {Data: []byte("---\ntitle: Abo turi bo\n---\nTugurisha ibiribwa **bishya**.\n")},
		"content/pages/en/hours.md": {Data: []byte("Open every day.")},
		"content/pages/en/broken.md": {Data: []byte("---\ntitle: [unclosed\n---\nbody")},
	}, "content")
}

func TestGetRendersMarkdownAndSanitizes(t *testing.T) {
	p, err := testSource().Get("pages", "about", i18n.EN)
	require.NoError(t, err)
	require.Equal(t, "About us", p.Title)
	require.Equal(t, "fa-store", p.Icon)
	require.Contains(t, string(p.HTML), "<strong>fresh</strong>")
	require.NotContains(t, string(p.HTML), "<script")
}

func TestGetFallsBackToSourceLocale(t *testing.T) {
	s := testSource()
	p, err := s.Get("pages", "about", i18n.RW)
	require.NoError(t, err)
	require.Equal(t, "Abo turi bo", p.Title)

	p, err = s.Get("pages", "hours", i18n.RW)
	require.NoError(t, err)
	require.Equal(t, i18n.EN, p.Lang)
	require.Empty(t, p.Title)
}

func TestGetErrors(t *testing.T) {
	s := testSource()
	_, err := s.Get("pages", "missing", i18n.EN)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("pages", "../secrets", i18n.EN)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("pages", "broken", i18n.EN)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
