package models

// ChangeFrequency values used in the sitemap.
type ChangeFrequency string

const (
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
)

// Page is a static, locale-free logical page that exists in every locale.
type Page struct {
	Path            string
	MessageKey      string // namespace under "metadata" in the message catalog
	Priority        float64
	ChangeFrequency ChangeFrequency
}

// Demo slugs served under /demos/{slug}.
const (
	DemoSushiDelivery = "sushi-delivery"
	DemoRestaurantAI  = "restaurant-ai"
)

var (
	HomePage        = Page{Path: "", MessageKey: "", Priority: 1.0, ChangeFrequency: ChangeWeekly}
	BlogPage        = Page{Path: "/blog", MessageKey: "blog", Priority: 0.9, ChangeFrequency: ChangeDaily}
	AboutPage       = Page{Path: "/about", MessageKey: "about", Priority: 0.7, ChangeFrequency: ChangeMonthly}
	ContactPage     = Page{Path: "/contact", MessageKey: "contact", Priority: 0.6, ChangeFrequency: ChangeMonthly}
	RestaurantsPage = Page{Path: "/restaurants", MessageKey: "restaurants", Priority: 0.7, ChangeFrequency: ChangeWeekly}
)

// Demos maps demo slugs to their pages.
var Demos = map[string]Page{
	DemoSushiDelivery: {Path: "/demos/" + DemoSushiDelivery, MessageKey: "sushidelivery", Priority: 0.6, ChangeFrequency: ChangeMonthly},
	DemoRestaurantAI:  {Path: "/demos/" + DemoRestaurantAI, MessageKey: "restaurantai", Priority: 0.6, ChangeFrequency: ChangeMonthly},
}

// StaticPages lists every static page in sitemap order.
var StaticPages = []Page{
	HomePage,
	BlogPage,
	AboutPage,
	ContactPage,
	RestaurantsPage,
	Demos[DemoSushiDelivery],
	Demos[DemoRestaurantAI],
}

// BlogPostPath returns the locale-free path of a blog post.
func BlogPostPath(slug string) string {
	return BlogPage.Path + "/" + slug
}
