package i18n

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav.home":"Home","search.placeholder":"Search products..."}`)},
		"locales/rw.json": {Data: []byte(`{"nav.home":"Ahabanza"}`)},
	}
	b, err := Load(fsys, "locales", "en", []string{"en", "rw"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := testBundle(t)
	got := b.Resolve("en;q=0.8, rw;q=0.9")
	if got != "rw" {
		t.Fatalf("expected rw, got %s", got)
	}
}

func TestResolveFallsBackForUnknownLanguages(t *testing.T) {
	b := testBundle(t)
	if got := b.Resolve("fr-FR, de;q=0.5"); got != "en" {
		t.Fatalf("expected fallback en, got %s", got)
	}
	if got := b.Resolve(""); got != "en" {
		t.Fatalf("expected fallback en for empty header, got %s", got)
	}
	if got := b.Resolve("rw-RW"); got != "rw" {
		t.Fatalf("expected regional rw to resolve to rw, got %s", got)
	}
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	b := testBundle(t)
	if got := b.T("rw", "nav.home"); got != "Ahabanza" {
		t.Fatalf("unexpected rw translation %q", got)
	}
	if got := b.T("rw", "search.placeholder"); got != "Search products..." {
		t.Fatalf("expected en fallback, got %q", got)
	}
	if got := b.T("rw", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestPairReturnsEveryLoadedLocale(t *testing.T) {
	b := testBundle(t)
	pair := b.Pair("nav.home")
	if pair["en"] != "Home" || pair["rw"] != "Ahabanza" {
		t.Fatalf("unexpected pair %v", pair)
	}
}

func TestLoadRequiresFallbackFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "locales", "en", []string{"en", "rw"})
	if err == nil {
		t.Fatal("expected error when fallback locale is missing")
	}
}

func TestParseLocale(t *testing.T) {
	for in, want := range map[string]Locale{"en": EN, " RW ": RW, "rw": RW} {
		got, err := ParseLocale(in)
		if err != nil || got != want {
			t.Fatalf("ParseLocale(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLocale("pt"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if EN.Other() != RW || RW.Other() != EN {
		t.Fatal("Other should swap locales")
	}
	if RW.Attr() != "data-rw" {
		t.Fatalf("unexpected attr %q", RW.Attr())
	}
}
