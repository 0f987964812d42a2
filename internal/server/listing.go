package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/config"
	"github.com/aleister1102/reportbrowser/internal/logrender"
	"github.com/rs/zerolog"
)

const listingTemplateName = "listing.html.tmpl"

var digitRun = regexp.MustCompile(`\d+`)

// naturalKey pads every digit run to ten places so that "run_92" sorts
// before "run_100".
func naturalKey(name string) string {
	return digitRun.ReplaceAllStringFunc(name, func(number string) string {
		trimmed := strings.TrimLeft(number, "0")
		if len(trimmed) >= 10 {
			return trimmed
		}
		return strings.Repeat("0", 10-len(trimmed)) + trimmed
	})
}

type listingRule struct {
	pattern *regexp.Regexp
	style   string
}

// ListingEntry is one line of a directory listing.
type ListingEntry struct {
	Name  string
	Href  string
	IsDir bool
	Style string
}

// Class is the CSS class list of the entry's link.
func (e ListingEntry) Class() string {
	kind := "file"
	if e.IsDir {
		kind = "directory"
	}
	return kind + " listing_" + e.Style
}

type listingPage struct {
	Title   string
	Entries []ListingEntry
}

// ListingRenderer renders directory pages below the reports root.
type ListingRenderer struct {
	reportsDir  string
	rules       []listingRule
	fileManager *common.FileManager
	page        *template.Template
	logger      zerolog.Logger
}

// NewListingRenderer compiles the style rules. Rules are tried in order and
// the first match wins; unmatched entries get config.DefaultListingStyle.
func NewListingRenderer(reportsDir string, styles []config.ListingStyleConfig, fileManager *common.FileManager, logger zerolog.Logger) (*ListingRenderer, error) {
	lr := &ListingRenderer{
		reportsDir:  reportsDir,
		fileManager: fileManager,
		logger:      logger.With().Str("component", "ListingRenderer").Logger(),
	}

	for _, s := range styles {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, common.WrapConfigurationError(err, "render_config", fmt.Sprintf("invalid listing pattern %q", s.Pattern))
		}
		lr.rules = append(lr.rules, listingRule{pattern: re, style: s.Style})
	}

	content, err := templatesFS.ReadFile("templates/" + listingTemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded listing template: %w", err)
	}
	lr.page, err = template.New(listingTemplateName).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded listing template: %w", err)
	}
	return lr, nil
}

// Style returns the style for rel, a slash separated path below the reports
// root.
func (lr *ListingRenderer) Style(rel string) string {
	for _, rule := range lr.rules {
		if rule.pattern.MatchString(rel) {
			return rule.style
		}
	}
	return config.DefaultListingStyle
}

// Entries lists the directory rel, naturally sorted in descending order, with
// a ".." entry unless rel is the root.
func (lr *ListingRenderer) Entries(rel string) ([]ListingEntry, error) {
	dir, err := lr.fileManager.ResolveWithin(lr.reportsDir, rel)
	if err != nil {
		return nil, err
	}
	infos, err := lr.fileManager.ListDirectory(dir)
	if err != nil {
		return nil, err
	}

	isDir := make(map[string]bool, len(infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		isDir[info.Name] = info.IsDir
		names = append(names, info.Name)
	}
	names = logrender.PruneLogFiles(names)

	rel = strings.Trim(rel, "/")
	sort.SliceStable(names, func(i, j int) bool {
		return naturalKey(names[i]) > naturalKey(names[j])
	})

	entries := make([]ListingEntry, 0, len(names)+1)
	if rel != "" {
		parent := path.Dir(rel)
		if parent == "." {
			parent = ""
		}
		entries = append(entries, ListingEntry{Name: "..", Href: hrefFor(parent), IsDir: true, Style: config.DefaultListingStyle})
	}
	for _, name := range names {
		entryRel := path.Join(rel, name)
		entries = append(entries, ListingEntry{
			Name:  name,
			Href:  hrefFor(entryRel),
			IsDir: isDir[name],
			Style: lr.Style(entryRel),
		})
	}
	return entries, nil
}

// Render returns the HTML page for directory rel.
func (lr *ListingRenderer) Render(rel string) (string, error) {
	entries, err := lr.Entries(rel)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = lr.page.Execute(&buf, listingPage{Title: strings.Trim(rel, "/"), Entries: entries})
	if err != nil {
		return "", fmt.Errorf("failed to execute listing template: %w", err)
	}
	lr.logger.Debug().Str("directory", rel).Int("entries", len(entries)).Msg("Rendered listing")
	return buf.String(), nil
}

// hrefFor escapes rel into an absolute URL path.
func hrefFor(rel string) string {
	return (&url.URL{Path: "/" + rel}).EscapedPath()
}
