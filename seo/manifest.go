package seo

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// Manifest is the web app manifest served at /manifest.webmanifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

func NewManifest(site Site) Manifest {
	return Manifest{
		Name:            site.Author + " | Sushi Chef & Technologist",
		ShortName:       site.Author,
		Description:     "Professional sushi chef sharing secrets of Japanese cuisine and culinary technology.",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: site.BackgroundColor,
		ThemeColor:      site.ThemeColor,
		Icons: []ManifestIcon{
			{Src: "/favicon.ico", Sizes: "any", Type: "image/x-icon"},
		},
	}
}
