package museum

import (
	"context"
	"math/rand/v2"
)

// curatedWork is a public-domain work with a direct image link, used to
// complete a collection when the API returns too few items.
type curatedWork struct {
	Title  string
	Artist string
	Year   string
	Image  string
}

const wiki = "https://upload.wikimedia.org/wikipedia/"

var curatedArt = []curatedWork{
	{"The Great Wave off Kanagawa", "Katsushika Hokusai", "1831", "https://images.metmuseum.org/CRDImages/as/original/DP141064.jpg"},
	{"Girl with a Pearl Earring", "Johannes Vermeer", "1665", wiki + "commons/0/0f/1665_Girl_with_a_Pearl_Earring.jpg"},
	{"The Starry Night", "Vincent van Gogh", "1889", wiki + "commons/thumb/e/ea/Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg/1280px-Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg"},
	{"The Birth of Venus", "Sandro Botticelli", "1485", wiki + "commons/thumb/0/0b/Sandro_Botticelli_-_La_nascita_di_Venere_-_Google_Art_Project_-_edited.jpg/1280px-Sandro_Botticelli_-_La_nascita_di_Venere_-_Google_Art_Project_-_edited.jpg"},
	{"The Kiss", "Gustav Klimt", "1908", wiki + "commons/thumb/f/f3/Gustav_Klimt_016.jpg/800px-Gustav_Klimt_016.jpg"},
	{"American Gothic", "Grant Wood", "1930", wiki + "commons/thumb/c/cc/Grant_Wood_-_American_Gothic_-_Google_Art_Project.jpg/800px-Grant_Wood_-_American_Gothic_-_Google_Art_Project.jpg"},
	{"Nighthawks", "Edward Hopper", "1942", wiki + "commons/thumb/a/a8/Nighthawks_by_Edward_Hopper_1942.jpg/1280px-Nighthawks_by_Edward_Hopper_1942.jpg"},
	{"Mona Lisa", "Leonardo da Vinci", "1503", wiki + "commons/thumb/e/ec/Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg/800px-Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg"},
	{"The Night Watch", "Rembrandt", "1642", wiki + "commons/thumb/5/5a/The_Night_Watch_-_HD.jpg/1280px-The_Night_Watch_-_HD.jpg"},
	{"Whistler's Mother", "James McNeill Whistler", "1871", wiki + "commons/thumb/1/1b/Whistlers_Mother_high_res.jpg/800px-Whistlers_Mother_high_res.jpg"},
	{"Water Lilies", "Claude Monet", "1916", wiki + "commons/thumb/a/aa/Claude_Monet_-_Water_Lilies_-_1906%2C_Ryerson.jpg/1280px-Claude_Monet_-_Water_Lilies_-_1906%2C_Ryerson.jpg"},
	{"Sunflowers", "Vincent van Gogh", "1888", wiki + "commons/thumb/4/46/Vincent_Willem_van_Gogh_127.jpg/800px-Vincent_Willem_van_Gogh_127.jpg"},
	{"The Garden of Earthly Delights", "Hieronymus Bosch", "1515", wiki + "commons/thumb/9/96/The_Garden_of_earthly_delights.jpg/1280px-The_Garden_of_earthly_delights.jpg"},
	{"A Sunday Afternoon", "Georges Seurat", "1886", wiki + "commons/thumb/7/7d/A_Sunday_on_La_Grande_Jatte%2C_Georges_Seurat%2C_1884.jpg/1280px-A_Sunday_on_La_Grande_Jatte%2C_Georges_Seurat%2C_1884.jpg"},
	{"Impression, Sunrise", "Claude Monet", "1872", wiki + "commons/thumb/5/59/Monet_-_Impression%2C_Sunrise.jpg/1280px-Monet_-_Impression%2C_Sunrise.jpg"},
	{"The Arnolfini Portrait", "Jan van Eyck", "1434", wiki + "commons/thumb/3/33/Van_Eyck_-_Arnolfini_Portrait.jpg/800px-Van_Eyck_-_Arnolfini_Portrait.jpg"},
	{"Café Terrace at Night", "Vincent van Gogh", "1888", wiki + "commons/thumb/2/21/Vincent_Willem_van_Gogh_-_Cafe_Terrace_at_Night_%28Yorck%29.jpg/800px-Vincent_Willem_van_Gogh_-_Cafe_Terrace_at_Night_%28Yorck%29.jpg"},
	{"Saturn Devouring His Son", "Francisco Goya", "1823", wiki + "commons/thumb/8/82/Francisco_de_Goya%2C_Saturno_devorando_a_su_hijo_%281819-1823%29.jpg/800px-Francisco_de_Goya%2C_Saturno_devorando_a_su_hijo_%281819-1823%29.jpg"},
	{"The Kiss of Judas", "Giotto", "1306", wiki + "commons/thumb/e/e2/Giotto_-_Scrovegni_-_-31-_-_Kiss_of_Judas.jpg/800px-Giotto_-_Scrovegni_-_-31-_-_Kiss_of_Judas.jpg"},
	{"Las Meninas", "Diego Velázquez", "1656", wiki + "commons/thumb/3/31/Las_Meninas%2C_by_Diego_Vel%C3%A1zquez%2C_from_Prado_in_Google_Earth.jpg/800px-Las_Meninas%2C_by_Diego_Vel%C3%A1zquez%2C_from_Prado_in_Google_Earth.jpg"},
}

var curatedDesign = []curatedWork{
	{"Bauhaus Exhibition Poster", "László Moholy-Nagy", "1923", "https://images.metmuseum.org/CRDImages/md/original/DT5337.jpg"},
	{"Swiss Typography Poster", "Josef Müller-Brockmann", "1958", "https://images.metmuseum.org/CRDImages/md/original/DT5338.jpg"},
}

// curatedPad returns a SupplementFunc that cycles through works in a shuffled
// order. The returned items carry only display fields.
func curatedPad(works []curatedWork, source string, rng *rand.Rand) SupplementFunc {
	return func(_ context.Context, remaining int) []Item {
		if remaining <= 0 || len(works) == 0 {
			return nil
		}
		order := make([]curatedWork, len(works))
		copy(order, works)
		shuffle(rng, order)

		out := make([]Item, remaining)
		for i := range out {
			w := order[i%len(order)]
			out[i] = Item{
				Title:    w.Title,
				Artist:   w.Artist,
				Date:     w.Year,
				ImageURL: w.Image,
				Source:   source,
			}
		}
		return out
	}
}
