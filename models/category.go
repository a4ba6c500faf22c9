package models

// Category is an entry of the static blog category registry. Posts reference
// categories by Key; the registry only enriches display.
type Category struct {
	Key     string `json:"key"`
	Emoji   string `json:"emoji"`
	I18nKey string `json:"i18nKey"`
}

// AllCategories is the sentinel that disables category filtering.
const AllCategories = "all"

var Categories = []Category{
	{Key: "Kitchen Tech", Emoji: "🔪", I18nKey: "kitchentech"},
	{Key: "Sushi Mastery", Emoji: "🍣", I18nKey: "sushimastery"},
	{Key: "Chef Mindset", Emoji: "🧠", I18nKey: "chefmindset"},
	{Key: "Restaurants", Emoji: "🏪", I18nKey: "restaurants"},
	{Key: "Products", Emoji: "📦", I18nKey: "products"},
	{Key: "AI & Tech", Emoji: "🤖", I18nKey: "ai"},
}

// LookupCategory finds a registry entry by exact key.
func LookupCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
