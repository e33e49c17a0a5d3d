package genre

// Entry is a suggested genre readers can add to their favorites.
type Entry struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Catalog is the suggested genre list, in display order. Favorites are
// free-form, so this is guidance for clients, not an allow-list.
var Catalog = []Entry{
	{Name: "Fantasy", Slug: "fantasy"},
	{Name: "Epic Fantasy", Slug: "epic-fantasy"},
	{Name: "Urban Fantasy", Slug: "urban-fantasy"},
	{Name: "Science Fiction", Slug: "science-fiction"},
	{Name: "Space Opera", Slug: "space-opera"},
	{Name: "Cyberpunk", Slug: "cyberpunk"},
	{Name: "Dystopian", Slug: "dystopian"},
	{Name: "Mystery", Slug: "mystery"},
	{Name: "Thriller", Slug: "thriller"},
	{Name: "Horror", Slug: "horror"},
	{Name: "Romance", Slug: "romance"},
	{Name: "Contemporary Romance", Slug: "contemporary-romance"},
	{Name: "Historical Fiction", Slug: "historical-fiction"},
	{Name: "Literary Fiction", Slug: "literary-fiction"},
	{Name: "Young Adult", Slug: "young-adult"},
	{Name: "Humor", Slug: "humor"},
	{Name: "Biography & Memoir", Slug: "biography-memoir"},
	{Name: "History", Slug: "history"},
	{Name: "Science", Slug: "science"},
	{Name: "Philosophy", Slug: "philosophy"},
	{Name: "Self-Help", Slug: "self-help"},
	{Name: "Business & Finance", Slug: "business-finance"},
	{Name: "Travel", Slug: "travel"},
	{Name: "Poetry", Slug: "poetry"},
	{Name: "True Crime", Slug: "true-crime"},
}

// aliases maps common variations to catalog slugs.
var aliases = map[string]string{
	"sci-fi":          "science-fiction",
	"scifi":           "science-fiction",
	"sf":              "science-fiction",
	"high-fantasy":    "epic-fantasy",
	"ya":              "young-adult",
	"teen":            "young-adult",
	"suspense":        "thriller",
	"scary":           "horror",
	"comedy":          "humor",
	"funny":           "humor",
	"memoir":          "biography-memoir",
	"biography":       "biography-memoir",
	"autobiography":   "biography-memoir",
	"selfhelp":        "self-help",
	"self-help-books": "self-help",
	"business":        "business-finance",
	"finance":         "business-finance",
	"money":           "business-finance",
	"historical":      "historical-fiction",
	"literature":      "literary-fiction",
	"crime":           "true-crime",
	"modern-romance":  "contemporary-romance",
}

var bySlug = func() map[string]Entry {
	m := make(map[string]Entry, len(Catalog))
	for _, e := range Catalog {
		m[e.Slug] = e
	}
	return m
}()

// Resolve maps a user-typed genre name to a catalog entry when one
// matches, directly or through a known alias.
func Resolve(raw string) (Entry, bool) {
	slug := Slugify(raw)
	if canonical, ok := aliases[slug]; ok {
		slug = canonical
	}
	entry, ok := bySlug[slug]
	return entry, ok
}
