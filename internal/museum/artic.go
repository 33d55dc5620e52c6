package museum

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

const (
	articAPI   = "https://api.artic.edu/api/v1"
	articIIIF  = "https://www.artic.edu/iiif/2"
	articSite  = "https://www.artic.edu/artworks"
	articField = "id,title,artist_display,date_display,image_id,is_public_domain,description," +
		"short_description,medium_display,dimensions,credit_line,style_titles," +
		"classification_titles,subject_titles,theme_titles,color"
)

// ArticCategories are the themed searches a collection load is spread over.
var ArticCategories = []string{
	"Impressionism",
	"Pop Art",
	"Surrealism",
	"Modernism",
	"Art Deco",
	"landscape",
	"portrait",
	"cityscape",
	"still life",
	"animals",
	"abstract",
}

type articColor struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

type articArtwork struct {
	ID                   int         `json:"id"`
	Title                string      `json:"title"`
	ArtistDisplay        string      `json:"artist_display"`
	DateDisplay          string      `json:"date_display"`
	ImageID              string      `json:"image_id"`
	IsPublicDomain       bool        `json:"is_public_domain"`
	Description          string      `json:"description"`
	ShortDescription     string      `json:"short_description"`
	MediumDisplay        string      `json:"medium_display"`
	Dimensions           string      `json:"dimensions"`
	CreditLine           string      `json:"credit_line"`
	StyleTitles          []string    `json:"style_titles"`
	ClassificationTitles []string    `json:"classification_titles"`
	SubjectTitles        []string    `json:"subject_titles"`
	ThemeTitles          []string    `json:"theme_titles"`
	Color                *articColor `json:"color"`
}

type articSearch struct {
	Data []articArtwork `json:"data"`
}

// ArtInstitute reads the Art Institute of Chicago public API. No key needed.
type ArtInstitute struct {
	Client     *Client
	BaseURL    string
	ImageURL   string
	SiteURL    string
	Categories []string
	// Parallel bounds concurrent category searches.
	Parallel int
	// Rand shuffles results; nil keeps API order.
	Rand *rand.Rand
}

// NewArtInstitute returns a provider against the public endpoints.
func NewArtInstitute(c *Client, rng *rand.Rand) *ArtInstitute {
	return &ArtInstitute{
		Client:     c,
		BaseURL:    articAPI,
		ImageURL:   articIIIF,
		SiteURL:    articSite,
		Categories: ArticCategories,
		Parallel:   4,
		Rand:       rng,
	}
}

// Collection spreads the load over the themed categories and keeps colorful
// paintings, sculptures and photographs.
func (a *ArtInstitute) Collection(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 || len(a.Categories) == 0 {
		return []Item{}, nil
	}

	perCategory := int(math.Ceil(float64(n)/float64(len(a.Categories)))) + 1
	results := make([][]articArtwork, len(a.Categories))
	errs := make([]error, len(a.Categories))

	var g errgroup.Group
	g.SetLimit(max(a.Parallel, 1))
	for i, category := range a.Categories {
		g.Go(func() error {
			found, err := a.search(ctx, category, perCategory*2)
			if err != nil {
				errs[i] = fmt.Errorf("category %q: %w", category, err)
				return nil
			}
			results[i] = found[:min(len(found), perCategory)]
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[int]bool)
	var picked []articArtwork
	for _, found := range results {
		for _, art := range found {
			if seen[art.ID] || !articUsable(art) || !articCurated(art) {
				continue
			}
			seen[art.ID] = true
			picked = append(picked, art)
		}
	}
	shuffle(a.Rand, picked)

	items := make([]Item, 0, min(n, len(picked)))
	for _, art := range picked[:min(n, len(picked))] {
		items = append(items, a.item(art))
	}
	if len(items) == 0 {
		return items, firstError(errs)
	}
	return items, nil
}

// Search runs a keyword search and keeps public-domain works with an image.
func (a *ArtInstitute) Search(ctx context.Context, tag string, n int) ([]Item, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return []Item{}, nil
	}
	found, err := a.search(ctx, tag, n*3)
	if err != nil {
		return []Item{}, fmt.Errorf("art institute search %q: %w", tag, err)
	}
	items := make([]Item, 0, n)
	for _, art := range found {
		if len(items) == n {
			break
		}
		if articUsable(art) {
			items = append(items, a.item(art))
		}
	}
	return items, nil
}

func (a *ArtInstitute) search(ctx context.Context, q string, limit int) ([]articArtwork, error) {
	u := a.BaseURL + "/artworks/search?q=" + url.QueryEscape(q) +
		"&limit=" + strconv.Itoa(limit) + "&fields=" + articField
	var resp articSearch
	if err := a.Client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (a *ArtInstitute) item(art articArtwork) Item {
	it := Item{
		Title:    strings.TrimSpace(art.Title),
		Artist:   firstLine(art.ArtistDisplay),
		Date:     art.DateDisplay,
		ImageURL: a.ImageURL + "/" + art.ImageID + "/full/843,/0/default.jpg",
		ThumbURL: a.ImageURL + "/" + art.ImageID + "/full/200,/0/default.jpg",
		Source:   "Art Institute of Chicago",
		URL:      a.SiteURL + "/" + strconv.Itoa(art.ID),
		Record: Normalize(ArtMeta{
			Description:      art.Description,
			ShortDescription: art.ShortDescription,
			Medium:           art.MediumDisplay,
			Dimensions:       art.Dimensions,
			CreditLine:       art.CreditLine,
			Styles:           art.StyleTitles,
			Classifications:  art.ClassificationTitles,
			Subjects:         art.SubjectTitles,
			Themes:           art.ThemeTitles,
		}),
	}
	if art.Color != nil {
		it.Color = colorful.Hsl(art.Color.H, art.Color.S/100, art.Color.L/100).Clamped().Hex()
	}
	return it
}

// articUsable checks the minimum needed to show a work: an image reference that
// looks real, public domain, a title and an artist.
func articUsable(art articArtwork) bool {
	if art.ImageID == "" || !art.IsPublicDomain {
		return false
	}
	if len(art.ImageID) < 10 || strings.Contains(art.ImageID, "null") || strings.Contains(art.ImageID, "undefined") {
		return false
	}
	return strings.TrimSpace(art.Title) != "" && strings.TrimSpace(art.ArtistDisplay) != ""
}

// articCurated keeps paintings, sculptures and photographs, drops prints and
// washed-out works.
func articCurated(art articArtwork) bool {
	var painting, sculpture, photo bool
	for _, c := range art.ClassificationTitles {
		c = strings.ToLower(c)
		if strings.Contains(c, "print") || strings.Contains(c, "etching") || strings.Contains(c, "engraving") {
			return false
		}
		painting = painting || strings.Contains(c, "painting")
		sculpture = sculpture || strings.Contains(c, "sculpture")
		photo = photo || strings.Contains(c, "photograph")
	}
	if !painting && !sculpture && !photo {
		return false
	}
	return art.Color == nil || art.Color.S >= 15
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return strings.TrimSpace(s)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func shuffle[T any](rng *rand.Rand, s []T) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
