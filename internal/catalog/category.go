package catalog

type Category struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Count int    `json:"count" yaml:"count"`
}

// DefaultCategories are the departments shown in the storefront navigation.
// Counts are left at zero; Categories fills them from a catalog.
var DefaultCategories = []Category{
	{Name: "Televisions", Slug: "televisions"},
	{Name: "Audio", Slug: "audio"},
	{Name: "Smart Home", Slug: "smart-home"},
	{Name: "Gaming", Slug: "gaming"},
	{Name: "Home Appliances", Slug: "home-appliances"},
}

// Categories returns a copy of defs with Count set to the number of products
// of c in each category.
func Categories(c Catalog, defs []Category) []Category {
	out := make([]Category, len(defs))
	for i, def := range defs {
		def.Count = len(c.Filter(InCategory(def.Slug)))
		out[i] = def
	}
	return out
}
