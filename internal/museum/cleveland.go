package museum

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
)

const clevelandAPI = "https://openaccess-api.clevelandart.org/api"

type clevelandCreator struct {
	Description    string `json:"description"`
	NameInOriginal string `json:"name_in_original_language"`
	Role           string `json:"role"`
}

type clevelandRendition struct {
	URL string `json:"url"`
}

type clevelandImages struct {
	Web   *clevelandRendition `json:"web"`
	Print *clevelandRendition `json:"print"`
}

type clevelandArtwork struct {
	ID              int                `json:"id"`
	Title           string             `json:"title"`
	Tombstone       string             `json:"tombstone"`
	CreationDate    string             `json:"creation_date"`
	Creators        []clevelandCreator `json:"creators"`
	Culture         []string           `json:"culture"`
	Technique       string             `json:"technique"`
	Department      string             `json:"department"`
	Type            string             `json:"type"`
	Measurements    string             `json:"measurements"`
	CreditLine      string             `json:"creditline"`
	Description     string             `json:"description"`
	WallDescription string             `json:"wall_description"`
	URL             string             `json:"url"`
	Images          *clevelandImages   `json:"images"`
}

type clevelandPage struct {
	Data []clevelandArtwork `json:"data"`
}

// Cleveland reads the Cleveland Museum of Art open access API. No key needed.
type Cleveland struct {
	Client  *Client
	BaseURL string
	// MaxSkip bounds the random offset into the collection.
	MaxSkip int
	Rand    *rand.Rand
}

// NewCleveland returns a provider against the public endpoint.
func NewCleveland(c *Client, rng *rand.Rand) *Cleveland {
	return &Cleveland{Client: c, BaseURL: clevelandAPI, MaxSkip: 30000, Rand: rng}
}

// Collection reads one random window of the collection.
func (c *Cleveland) Collection(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 {
		return []Item{}, nil
	}
	skip := 0
	if c.Rand != nil && c.MaxSkip > 0 {
		skip = c.Rand.IntN(c.MaxSkip)
	}
	found, err := c.page(ctx, "", min(n*2, 1000), skip)
	if err != nil {
		return []Item{}, fmt.Errorf("cleveland: %w", err)
	}
	shuffle(c.Rand, found)
	return c.items(found, n), nil
}

// Search runs a keyword query.
func (c *Cleveland) Search(ctx context.Context, tag string, n int) ([]Item, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return []Item{}, nil
	}
	found, err := c.page(ctx, tag, min(n*2, 1000), 0)
	if err != nil {
		return []Item{}, fmt.Errorf("cleveland search %q: %w", tag, err)
	}
	return c.items(found, n), nil
}

func (c *Cleveland) page(ctx context.Context, q string, limit, skip int) ([]clevelandArtwork, error) {
	u := c.BaseURL + "/artworks/?has_image=1&limit=" + strconv.Itoa(limit) + "&skip=" + strconv.Itoa(skip)
	if q != "" {
		u += "&q=" + url.QueryEscape(q)
	}
	var resp clevelandPage
	if err := c.Client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Cleveland) items(found []clevelandArtwork, n int) []Item {
	items := make([]Item, 0, min(n, len(found)))
	for _, art := range found {
		if len(items) == n {
			break
		}
		if clevelandUsable(art) {
			items = append(items, clevelandItem(art))
		}
	}
	return items
}

func clevelandUsable(a clevelandArtwork) bool {
	if a.Images == nil || a.Images.Web == nil || a.Images.Web.URL == "" {
		return false
	}
	return strings.TrimSpace(a.Title) != "" && len(a.Creators) > 0 && a.CreationDate != ""
}

func clevelandItem(a clevelandArtwork) Item {
	creators := make([]Participant, 0, len(a.Creators))
	for _, cr := range a.Creators {
		creators = append(creators, Participant{Name: firstNonEmpty(cr.NameInOriginal, cr.Description), Role: cr.Role})
	}
	artist := "Unknown Artist"
	if len(creators) > 0 && creators[0].Name != "" {
		artist = creators[0].Name
	}

	image := a.Images.Web.URL
	if a.Images.Print != nil && a.Images.Print.URL != "" {
		image = a.Images.Print.URL
	}
	link := a.URL
	if link == "" {
		link = "https://www.clevelandart.org/art/" + strconv.Itoa(a.ID)
	}

	return Item{
		Title:    strings.TrimSpace(a.Title),
		Artist:   artist,
		Date:     a.CreationDate,
		ImageURL: image,
		ThumbURL: a.Images.Web.URL,
		Source:   "Cleveland Museum of Art",
		URL:      link,
		Record: Normalize(ClevelandMeta{
			Tombstone:       a.Tombstone,
			Technique:       a.Technique,
			Type:            a.Type,
			Measurements:    a.Measurements,
			CreditLine:      a.CreditLine,
			Department:      a.Department,
			Culture:         a.Culture,
			Description:     a.Description,
			WallDescription: a.WallDescription,
			Creators:        creators,
		}),
	}
}
