package museum

import (
	"slices"
	"strings"
)

// Meta is the provider-specific metadata attached to an item. The set of
// variants is closed: ArtMeta, DesignMeta, HarvardMeta and ClevelandMeta.
// Everything past the provider boundary works on the Record produced by
// Normalize.
type Meta interface {
	isMeta()
}

// Participant is a person credited on an object.
type Participant struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// ArtMeta is what the Art Institute of Chicago exposes.
type ArtMeta struct {
	Description      string
	ShortDescription string
	Medium           string
	Dimensions       string
	CreditLine       string
	Styles           []string
	Classifications  []string
	Subjects         []string
	Themes           []string
}

// DesignMeta is what the Met exposes for its design holdings.
type DesignMeta struct {
	Department     string
	ObjectName     string
	Classification string
	Medium         string
	Dimensions     string
	CreditLine     string
	Culture        string
}

// HarvardMeta is what Harvard Art Museums expose.
type HarvardMeta struct {
	Classification string
	Medium         string
	Technique      string
	Dimensions     string
	Culture        string
	Period         string
	Century        string
	Department     string
	CreditLine     string
	Description    string
	People         []Participant
}

// ClevelandMeta is what the Cleveland Museum of Art open access API exposes.
type ClevelandMeta struct {
	Tombstone       string
	Technique       string
	Type            string
	Measurements    string
	CreditLine      string
	Department      string
	Culture         []string
	Description     string
	WallDescription string
	Creators        []Participant
}

func (ArtMeta) isMeta()       {}
func (DesignMeta) isMeta()    {}
func (HarvardMeta) isMeta()   {}
func (ClevelandMeta) isMeta() {}

// Record is the canonical metadata shape used by tags, the detail view and
// the CLI.
type Record struct {
	Description     string        `json:"description,omitempty"`
	Medium          string        `json:"medium,omitempty"`
	Dimensions      string        `json:"dimensions,omitempty"`
	CreditLine      string        `json:"credit_line,omitempty"`
	ObjectType      string        `json:"object_type,omitempty"`
	Culture         string        `json:"culture,omitempty"`
	Department      string        `json:"department,omitempty"`
	Styles          []string      `json:"styles,omitempty"`
	Classifications []string      `json:"classifications,omitempty"`
	Subjects        []string      `json:"subjects,omitempty"`
	Participants    []Participant `json:"participants,omitempty"`
}

// IsZero reports whether the record carries no metadata at all.
func (r Record) IsZero() bool {
	return r.Description == "" && r.Medium == "" && r.Dimensions == "" &&
		r.CreditLine == "" && r.ObjectType == "" && r.Culture == "" &&
		r.Department == "" && len(r.Styles) == 0 && len(r.Classifications) == 0 &&
		len(r.Subjects) == 0 && len(r.Participants) == 0
}

// Normalize maps provider metadata onto a Record. A nil Meta yields the zero
// Record.
func Normalize(m Meta) Record {
	switch m := m.(type) {
	case ArtMeta:
		// Themes are broader subject groupings on this API.
		subjects := appendUnique(slices.Clone(m.Subjects), m.Themes...)
		return Record{
			Description:     stripMarkup(firstNonEmpty(m.ShortDescription, m.Description)),
			Medium:          m.Medium,
			Dimensions:      m.Dimensions,
			CreditLine:      m.CreditLine,
			Styles:          slices.Clone(m.Styles),
			Classifications: slices.Clone(m.Classifications),
			Subjects:        subjects,
		}
	case DesignMeta:
		return Record{
			Medium:          m.Medium,
			Dimensions:      m.Dimensions,
			CreditLine:      m.CreditLine,
			ObjectType:      m.ObjectName,
			Culture:         m.Culture,
			Department:      m.Department,
			Classifications: nonEmpty(m.Classification),
		}
	case HarvardMeta:
		return Record{
			Description:     m.Description,
			Medium:          firstNonEmpty(m.Medium, m.Technique),
			Dimensions:      m.Dimensions,
			CreditLine:      m.CreditLine,
			ObjectType:      m.Classification,
			Culture:         m.Culture,
			Department:      m.Department,
			Styles:          nonEmpty(m.Period),
			Classifications: nonEmpty(m.Classification),
			Participants:    slices.Clone(m.People),
		}
	case ClevelandMeta:
		culture := ""
		if len(m.Culture) > 0 {
			culture = m.Culture[0]
		}
		return Record{
			Description:     stripMarkup(firstNonEmpty(m.WallDescription, m.Description, m.Tombstone)),
			Medium:          m.Technique,
			Dimensions:      m.Measurements,
			CreditLine:      m.CreditLine,
			ObjectType:      m.Type,
			Culture:         culture,
			Department:      m.Department,
			Classifications: nonEmpty(m.Type),
			Participants:    slices.Clone(m.Creators),
		}
	default:
		return Record{}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(v string) []string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return []string{v}
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v != "" && !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

// stripMarkup removes simple HTML tags some APIs embed in descriptions.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
