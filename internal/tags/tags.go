// Package tags derives short, searchable labels from artwork metadata.
package tags

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

// MaxPerItem caps the tags shown for one artwork.
const MaxPerItem = 6

// Category groups tags for display. Categories are listed in priority order.
type Category string

const (
	Medium    Category = "medium"
	Type      Category = "type"
	Style     Category = "style"
	Subject   Category = "subject"
	Culture   Category = "culture"
	Attribute Category = "attribute"
)

// Tag is one label with its category.
type Tag struct {
	Label    string
	Category Category
}

type rule struct {
	needles []string
	label   string
}

var mediumRules = []rule{
	{[]string{"lithograph"}, "Lithograph"},
	{[]string{"screen print", "silkscreen"}, "Screen Print"},
	{[]string{"etching"}, "Etching"},
	{[]string{"woodcut", "wood cut"}, "Woodcut"},
	{[]string{"engraving"}, "Engraving"},
	{[]string{"offset"}, "Offset Print"},
	{[]string{"oil"}, "Oil Painting"},
	{[]string{"acrylic"}, "Acrylic"},
	{[]string{"watercolor"}, "Watercolor"},
	{[]string{"gouache"}, "Gouache"},
	{[]string{"pencil"}, "Pencil"},
	{[]string{"charcoal"}, "Charcoal"},
	{[]string{"ink"}, "Ink"},
	{[]string{"pastel"}, "Pastel"},
	{[]string{"photograph"}, "Photography"},
	{[]string{"gelatin silver"}, "Silver Gelatin Print"},
	{[]string{"bronze"}, "Bronze Sculpture"},
	{[]string{"marble"}, "Marble Sculpture"},
	{[]string{"ceramic"}, "Ceramic"},
	{[]string{"porcelain"}, "Porcelain"},
	{[]string{"textile", "fabric"}, "Textile"},
	{[]string{"tapestry"}, "Tapestry"},
}

var departmentRules = []rule{
	{[]string{"japanese"}, "Japanese"},
	{[]string{"chinese"}, "Chinese"},
	{[]string{"korean"}, "Korean"},
	{[]string{"european"}, "European"},
	{[]string{"american"}, "American"},
	{[]string{"african"}, "African"},
	{[]string{"islamic"}, "Islamic"},
	{[]string{"indian"}, "Indian"},
	{[]string{"contemporary"}, "Contemporary"},
	{[]string{"modern"}, "Modern"},
}

func match(rules []rule, s string) []string {
	s = strings.ToLower(s)
	var out []string
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(s, n) {
				out = append(out, r.label)
				break
			}
		}
	}
	return out
}

// NormalizeMedium maps a free-form medium line onto technique labels, e.g.
// "Lithograph on paper" gives ["Lithograph"]. With no known technique, the
// leading phrase is used when it is a sensible length.
func NormalizeMedium(medium string) []string {
	labels := match(mediumRules, medium)
	if len(labels) > 0 {
		return labels
	}
	first := medium
	if i := strings.IndexAny(medium, ",("); i >= 0 {
		first = medium[:i]
	}
	first = strings.TrimSpace(first)
	if n := len(first); n > 3 && n < 20 {
		return []string{first}
	}
	return nil
}

// NormalizeDepartment extracts region or period labels from a department name.
func NormalizeDepartment(department string) []string {
	return match(departmentRules, department)
}

func attributes(r museum.Record) []string {
	var out []string
	medium := strings.ToLower(r.Medium)
	if strings.Contains(medium, "hand") && (strings.Contains(medium, "drawn") || strings.Contains(medium, "painted")) {
		out = append(out, "Hand-drawn")
	}
	if strings.Contains(medium, "original") {
		out = append(out, "Original")
	}
	desc := strings.ToLower(r.Description)
	if strings.Contains(desc, "limited edition") {
		out = append(out, "Limited Edition")
	}
	if strings.Contains(desc, "signed") {
		out = append(out, "Signed")
	}
	return out
}

// Extract returns at most MaxPerItem tags for r in category priority order.
// Labels are unique case-insensitively.
func Extract(r museum.Record) []Tag {
	var out []Tag
	seen := make(map[string]bool)
	add := func(c Category, labels ...string) {
		for _, l := range labels {
			l = strings.TrimSpace(l)
			key := strings.ToLower(l)
			if l == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Tag{Label: l, Category: c})
		}
	}

	if strings.TrimSpace(r.Medium) != "" {
		add(Medium, NormalizeMedium(r.Medium)...)
	}
	add(Type, r.ObjectType)
	add(Style, r.Styles[:min(2, len(r.Styles))]...)
	add(Subject, r.Subjects[:min(2, len(r.Subjects))]...)
	if r.Culture != "" {
		add(Culture, r.Culture)
	} else if r.Department != "" {
		add(Culture, NormalizeDepartment(r.Department)...)
	}
	add(Attribute, attributes(r)...)

	if len(out) > MaxPerItem {
		out = out[:MaxPerItem]
	}
	return out
}

// Labels is Extract without categories.
func Labels(r museum.Record) []string {
	tags := Extract(r)
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Label
	}
	return out
}

// Has reports whether item carries label, ignoring case.
func Has(item museum.Item, label string) bool {
	label = strings.TrimSpace(label)
	for _, t := range Extract(item.Record) {
		if strings.EqualFold(t.Label, label) {
			return true
		}
	}
	return false
}

// Search keeps the items tagged with label, in order.
func Search(items []museum.Item, label string) []museum.Item {
	out := make([]museum.Item, 0)
	for _, it := range items {
		if Has(it, label) {
			out = append(out, it)
		}
	}
	return out
}

// Count is one entry of a tag histogram.
type Count struct {
	Label string
	Count int
}

// All counts tag labels across items, most common first and then
// alphabetically.
func All(items []museum.Item) []Count {
	counts := make(map[string]int)
	for _, it := range items {
		for _, t := range Extract(it.Record) {
			counts[t.Label]++
		}
	}
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}
