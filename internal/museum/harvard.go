package museum

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const harvardAPI = "https://api.harvardartmuseums.org"

// ErrMissingAPIKey is returned by providers that need a key when none is set.
var ErrMissingAPIKey = errors.New("api key required")

type harvardPerson struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	DisplayOrder int    `json:"displayorder"`
}

type harvardImage struct {
	BaseImageURL string `json:"baseimageurl"`
	IIIFBaseURI  string `json:"iiifbaseuri"`
}

type harvardObject struct {
	ID              int             `json:"id"`
	ObjectID        int             `json:"objectid"`
	Title           string          `json:"title"`
	Dated           string          `json:"dated"`
	Century         string          `json:"century"`
	Classification  string          `json:"classification"`
	Medium          string          `json:"medium"`
	Technique       string          `json:"technique"`
	Dimensions      string          `json:"dimensions"`
	People          []harvardPerson `json:"people"`
	Culture         string          `json:"culture"`
	Period          string          `json:"period"`
	Department      string          `json:"department"`
	CreditLine      string          `json:"creditline"`
	Description     string          `json:"description"`
	PrimaryImageURL string          `json:"primaryimageurl"`
	Images          []harvardImage  `json:"images"`
	URL             string          `json:"url"`
}

type harvardPage struct {
	Records []harvardObject `json:"records"`
}

// Harvard reads the Harvard Art Museums API, which requires a key.
type Harvard struct {
	Client  *Client
	BaseURL string
	APIKey  string
	// Attempts is how many random pages a collection load may read.
	Attempts int
	// Pages bounds the random page number.
	Pages int
	Rand  *rand.Rand
}

// NewHarvard returns a provider using key.
func NewHarvard(c *Client, key string, rng *rand.Rand) *Harvard {
	return &Harvard{
		Client:   c,
		BaseURL:  harvardAPI,
		APIKey:   key,
		Attempts: 5,
		Pages:    500,
		Rand:     rng,
	}
}

// Collection samples random pages of verified objects until n are found.
func (h *Harvard) Collection(ctx context.Context, n int) ([]Item, error) {
	if h.APIKey == "" {
		return []Item{}, fmt.Errorf("harvard: %w", ErrMissingAPIKey)
	}
	if n <= 0 {
		return []Item{}, nil
	}

	var (
		found   []harvardObject
		lastErr error
	)
	for attempt := 0; attempt < max(h.Attempts, 1) && len(found) < n; attempt++ {
		page := attempt + 1
		if h.Rand != nil && h.Pages > 0 {
			page = h.Rand.IntN(h.Pages) + 1
		}
		u := h.BaseURL + "/object?apikey=" + url.QueryEscape(h.APIKey) +
			"&size=100&page=" + strconv.Itoa(page) + "&hasimage=1&verificationlevel=4"

		var resp harvardPage
		if err := h.Client.GetJSON(ctx, u, &resp); err != nil {
			lastErr = err
			if IsRateLimited(err) || ctx.Err() != nil {
				break
			}
			continue
		}
		for _, obj := range resp.Records {
			if harvardUsable(obj) && !strings.Contains(strings.ToLower(obj.Title), "untitled") {
				found = append(found, obj)
			}
		}
	}

	shuffle(h.Rand, found)
	items := make([]Item, 0, min(n, len(found)))
	for _, obj := range found[:min(n, len(found))] {
		items = append(items, harvardItem(obj))
	}
	if len(items) == 0 && lastErr != nil {
		return items, fmt.Errorf("harvard: %w", lastErr)
	}
	return items, nil
}

// Search runs a keyword query.
func (h *Harvard) Search(ctx context.Context, tag string, n int) ([]Item, error) {
	if h.APIKey == "" {
		return []Item{}, fmt.Errorf("harvard: %w", ErrMissingAPIKey)
	}
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return []Item{}, nil
	}

	u := h.BaseURL + "/object?apikey=" + url.QueryEscape(h.APIKey) +
		"&q=" + url.QueryEscape(tag) + "&size=" + strconv.Itoa(n*2) + "&hasimage=1"
	var resp harvardPage
	if err := h.Client.GetJSON(ctx, u, &resp); err != nil {
		return []Item{}, fmt.Errorf("harvard search %q: %w", tag, err)
	}
	items := make([]Item, 0, n)
	for _, obj := range resp.Records {
		if len(items) == n {
			break
		}
		if harvardUsable(obj) {
			items = append(items, harvardItem(obj))
		}
	}
	return items, nil
}

func harvardUsable(o harvardObject) bool {
	if o.PrimaryImageURL == "" && len(o.Images) == 0 {
		return false
	}
	return strings.TrimSpace(o.Title) != "" && len(o.People) > 0
}

func harvardItem(o harvardObject) Item {
	people := slices.Clone(o.People)
	slices.SortStableFunc(people, func(a, b harvardPerson) int { return a.DisplayOrder - b.DisplayOrder })

	participants := make([]Participant, 0, len(people))
	for _, p := range people {
		participants = append(participants, Participant{Name: p.Name, Role: p.Role})
	}

	artist := "Unknown Artist"
	if len(people) > 0 {
		artist = people[0].Name
	}
	date := o.Dated
	if date == "" {
		date = o.Century
	}

	image, thumb := o.PrimaryImageURL, o.PrimaryImageURL
	if len(o.Images) > 0 {
		img := o.Images[0]
		if img.IIIFBaseURI != "" {
			thumb = img.IIIFBaseURI + "/full/200,/0/default.jpg"
			if image == "" {
				image = img.IIIFBaseURI + "/full/843,/0/default.jpg"
			}
		} else if image == "" {
			image, thumb = img.BaseImageURL, img.BaseImageURL
		}
	}

	link := o.URL
	if link == "" {
		link = "https://harvardartmuseums.org/collections/object/" + strconv.Itoa(o.ObjectID)
	}

	return Item{
		Title:    strings.TrimSpace(o.Title),
		Artist:   artist,
		Date:     date,
		ImageURL: image,
		ThumbURL: thumb,
		Source:   "Harvard Art Museums",
		URL:      link,
		Record: Normalize(HarvardMeta{
			Classification: o.Classification,
			Medium:         o.Medium,
			Technique:      o.Technique,
			Dimensions:     o.Dimensions,
			Culture:        o.Culture,
			Period:         o.Period,
			Century:        o.Century,
			Department:     o.Department,
			CreditLine:     o.CreditLine,
			Description:    o.Description,
			People:         participants,
		}),
	}
}
