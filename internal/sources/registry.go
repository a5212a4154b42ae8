// Package sources fetches power-ranking articles and turns each supported
// site's markup into raw ranking entries.
package sources

import (
	"net/url"
	"sort"
	"strings"

	"powerrank/internal"
)

// Registry maps a URL's domain label to the adapter for that site.
type Registry struct {
	adapters   map[string]Adapter
	recognized map[string]string
}

func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}, recognized: map[string]string{}}
}

// Default returns the registry with every built-in adapter, plus the sites
// that are known but have no adapter yet.
func Default() *Registry {
	r := NewRegistry()
	r.Register("espn", ESPN())
	r.Register("bleacherreport", WithFallback(BleacherReport(), BleacherReportCompact()))
	r.Register("cbssports", WithFallback(CBS(), CBSList()))
	r.Register("thescore", TheScore())
	r.Register("nba", NBA())
	r.Register("foxsports", Fox())
	r.Recognize("si", "Sports Illustrated")
	r.Recognize("theringer", "The Ringer")
	r.Recognize("yahoo", "Yahoo Sports")
	return r
}

func (r *Registry) Register(label string, adapter Adapter) {
	r.adapters[strings.ToLower(label)] = adapter
}

// Recognize marks a site as known but unsupported so it is reported
// distinctly from an unknown domain.
func (r *Registry) Recognize(label, name string) {
	r.recognized[strings.ToLower(label)] = name
}

func (r *Registry) Lookup(rawURL string) (Adapter, error) {
	label, err := DomainLabel(rawURL)
	if err != nil {
		return nil, err
	}
	if adapter, ok := r.adapters[label]; ok {
		return adapter, nil
	}
	if name, ok := r.recognized[label]; ok {
		return nil, internal.Mark(internal.ErrSourceNotSupported, nil, "%s (%s) not currently supported", name, label)
	}
	return nil, internal.Mark(internal.ErrUnsupportedSource, nil, "no adapter for domain %q (supported: %s)", label, strings.Join(r.Labels(), ", "))
}

// Labels lists registered domain labels in sorted order.
func (r *Registry) Labels() []string {
	out := make([]string, 0, len(r.adapters))
	for label := range r.adapters {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// DomainLabel returns the second-to-last host label: "www.espn.com" -> "espn".
func DomainLabel(rawURL string) (string, error) {
	raw := strings.TrimSpace(rawURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", internal.Mark(internal.ErrUnsupportedSource, err, "parse url %q", rawURL)
	}
	parts := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(parts) < 2 || parts[len(parts)-2] == "" {
		return "", internal.Mark(internal.ErrUnsupportedSource, nil, "url %q has no domain label", rawURL)
	}
	return parts[len(parts)-2], nil
}
