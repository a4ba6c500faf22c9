package seo

// Site holds the identity used across metadata, JSON-LD and the manifest.
type Site struct {
	Origin            string
	Name              string
	Author            string
	DefaultImage      string
	JobTitle          string
	PersonDescription string
	SameAs            []string
	ThemeColor        string
	BackgroundColor   string
}

func DefaultSite() Site {
	return Site{
		Origin:            "https://dima-fomin.pl",
		Name:              "Dima Fomin - Sushi Chef",
		Author:            "Dima Fomin",
		DefaultImage:      "https://i.postimg.cc/RCf8VLFn/DSCF4639.jpg",
		JobTitle:          "Sushi Chef & Food Technologist",
		PersonDescription: "Expert in sushi art, Japanese cuisine, and culinary technology",
		SameAs: []string{
			"https://instagram.com/dima_fomin_chef",
			"https://linkedin.com/in/dima-fomin",
		},
		ThemeColor:      "#ef4444",
		BackgroundColor: "#ffffff",
	}
}
