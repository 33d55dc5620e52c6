package museum

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const metAPI = "https://collectionapi.metmuseum.org/public/collection/v1"

// MetDesignTerms are the searches a design collection load picks from.
var MetDesignTerms = []string{"poster", "graphic design", "modernist", "bauhaus", "swiss design"}

// MetCuratedIDs are known design objects used when the search fails.
var MetCuratedIDs = []int{
	488315, 488329, 488342, 488355, 482828,
	482835, 482845, 483102, 483115, 483128,
}

type metSearch struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

type metObject struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Department        string `json:"department"`
	ObjectName        string `json:"objectName"`
	Medium            string `json:"medium"`
	Dimensions        string `json:"dimensions"`
	CreditLine        string `json:"creditLine"`
	Classification    string `json:"classification"`
	Culture           string `json:"culture"`
	IsPublicDomain    bool   `json:"isPublicDomain"`
	ObjectURL         string `json:"objectURL"`
}

// MetDesign reads the Met collection API, restricted to modern design.
type MetDesign struct {
	Client     *Client
	BaseURL    string
	Department int
	Terms      []string
	CuratedIDs []int
	// Batch is how many objects are requested concurrently.
	Batch int
	Rand  *rand.Rand
}

// NewMetDesign returns a provider for the Modern and Contemporary Art department.
func NewMetDesign(c *Client, rng *rand.Rand) *MetDesign {
	return &MetDesign{
		Client:     c,
		BaseURL:    metAPI,
		Department: 6,
		Terms:      MetDesignTerms,
		CuratedIDs: MetCuratedIDs,
		Batch:      10,
		Rand:       rng,
	}
}

// Collection searches one design term and fetches objects until n pass the
// design filter. A failed or empty search falls back to the curated IDs.
func (m *MetDesign) Collection(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 {
		return []Item{}, nil
	}

	term := "poster"
	if len(m.Terms) > 0 {
		term = m.Terms[0]
		if m.Rand != nil {
			term = m.Terms[m.Rand.IntN(len(m.Terms))]
		}
	}

	ids, err := m.searchIDs(ctx, term)
	if err != nil || len(ids) == 0 {
		ids = append([]int(nil), m.CuratedIDs...)
	}
	shuffle(m.Rand, ids)
	ids = ids[:min(len(ids), n*2)]

	items, ferr := m.objects(ctx, ids, n, metDesignObject)
	if len(items) == 0 {
		if err != nil {
			return items, fmt.Errorf("met design search %q: %w", term, err)
		}
		return items, ferr
	}
	return items, nil
}

// Search looks the tag up in the design department.
func (m *MetDesign) Search(ctx context.Context, tag string, n int) ([]Item, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return []Item{}, nil
	}
	ids, err := m.searchIDs(ctx, tag)
	if err != nil {
		return []Item{}, fmt.Errorf("met search %q: %w", tag, err)
	}
	ids = ids[:min(len(ids), n*2)]
	items, err := m.objects(ctx, ids, n, metShowable)
	if len(items) == 0 && err != nil {
		return items, err
	}
	return items, nil
}

func (m *MetDesign) searchIDs(ctx context.Context, q string) ([]int, error) {
	u := m.BaseURL + "/search?q=" + url.QueryEscape(q) + "&hasImages=true"
	if m.Department > 0 {
		u += "&departmentId=" + strconv.Itoa(m.Department)
	}
	var resp metSearch
	if err := m.Client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.ObjectIDs, nil
}

// objects fetches ids batch by batch, in order, until want objects pass keep.
func (m *MetDesign) objects(ctx context.Context, ids []int, want int, keep func(metObject) bool) ([]Item, error) {
	batch := max(m.Batch, 1)
	items := make([]Item, 0, want)
	var lastErr error

	for start := 0; start < len(ids) && len(items) < want; start += batch {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		chunk := ids[start:min(start+batch, len(ids))]
		got := make([]*metObject, len(chunk))
		errs := make([]error, len(chunk))

		var g errgroup.Group
		for i, id := range chunk {
			g.Go(func() error {
				var obj metObject
				if err := m.Client.GetJSON(ctx, m.BaseURL+"/objects/"+strconv.Itoa(id), &obj); err != nil {
					errs[i] = err
					return nil
				}
				got[i] = &obj
				return nil
			})
		}
		_ = g.Wait()

		for i, obj := range got {
			if errs[i] != nil {
				lastErr = errs[i]
				continue
			}
			if obj == nil || !keep(*obj) {
				continue
			}
			items = append(items, metItem(*obj))
			if len(items) == want {
				break
			}
		}
	}
	return items, lastErr
}

func metShowable(o metObject) bool {
	return o.IsPublicDomain && o.PrimaryImage != "" && strings.TrimSpace(o.Title) != ""
}

func metDesignObject(o metObject) bool {
	if !metShowable(o) {
		return false
	}
	dept := strings.ToLower(o.Department)
	name := strings.ToLower(o.ObjectName)
	class := strings.ToLower(o.Classification)
	return strings.Contains(dept, "modern") ||
		strings.Contains(dept, "contemporary") ||
		strings.Contains(name, "poster") ||
		strings.Contains(name, "design") ||
		strings.Contains(class, "graphic") ||
		strings.Contains(class, "poster")
}

func metItem(o metObject) Item {
	link := o.ObjectURL
	if link == "" {
		link = "https://www.metmuseum.org/art/collection/search/" + strconv.Itoa(o.ObjectID)
	}
	return Item{
		Title:    strings.TrimSpace(o.Title),
		Artist:   o.ArtistDisplayName,
		Date:     o.ObjectDate,
		ImageURL: o.PrimaryImage,
		ThumbURL: o.PrimaryImageSmall,
		Source:   "Metropolitan Museum of Art",
		URL:      link,
		Record: Normalize(DesignMeta{
			Department:     o.Department,
			ObjectName:     o.ObjectName,
			Classification: o.Classification,
			Medium:         o.Medium,
			Dimensions:     o.Dimensions,
			CreditLine:     o.CreditLine,
			Culture:        o.Culture,
		}),
	}
}
