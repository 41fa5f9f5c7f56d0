// Package content serves the localized markdown sections of the site (about,
// store hours). Pages live at <dir>/<kind>/<lang>/<slug>.md with optional
// YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

var ErrNotFound = errors.New("content: not found")

// Page is one rendered markdown document.
type Page struct {
	Kind    string
	Slug    string
	Lang    i18n.Locale
	Title   string
	Summary string
	Icon    string
	HTML    template.HTML
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Icon    string `yaml:"icon"`
}

// Source reads and caches pages from an fs.FS.
type Source struct {
	fsys   fs.FS
	dir    string
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]Page
}

func NewSource(fsys fs.FS, dir string) *Source {
	return &Source{
		fsys:   fsys,
		dir:    dir,
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Table)),
		policy: bluemonday.UGCPolicy(),
		cache:  map[string]Page{},
	}
}

// Get returns the page in lang, falling back to the source locale.
func (s *Source) Get(kind, slug string, lang i18n.Locale) (Page, error) {
	p, err := s.load(kind, slug, lang)
	if errors.Is(err, ErrNotFound) && lang != i18n.Source {
		return s.load(kind, slug, i18n.Source)
	}
	return p, err
}

func (s *Source) load(kind, slug string, lang i18n.Locale) (Page, error) {
	key := kind + "/" + string(lang) + "/" + slug
	s.mu.RLock()
	p, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}
	p, err := s.read(kind, slug, lang)
	if err != nil {
		return Page{}, err
	}
	s.mu.Lock()
	s.cache[key] = p
	s.mu.Unlock()
	return p, nil
}

func (s *Source) read(kind, slug string, lang i18n.Locale) (Page, error) {
	if slug == "" || strings.ContainsAny(slug, "/\\") {
		return Page{}, ErrNotFound
	}
	file := path.Join(s.dir, kind, string(lang), slug+".md")
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	return Page{
		Kind:    kind,
		Slug:    slug,
		Lang:    lang,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Icon:    strings.TrimSpace(front.Icon),
		HTML:    template.HTML(s.policy.SanitizeBytes(buf.Bytes())),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
