package services

import (
	"net/url"
	"strings"
)

// ShareLink is a prefilled "share this post" URL for one network.
type ShareLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// FormatHashtag formats a tag value as a hashtag. It keeps letters, digits and
// underscores, drops everything else and lowercases the result. Hashtags
// cannot start with a digit.
func FormatHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	var result strings.Builder
	for _, r := range tag {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}

	formatted := strings.ToLower(result.String())
	if len(formatted) > 0 && formatted[0] >= '0' && formatted[0] <= '9' {
		return ""
	}
	return formatted
}

// ShareLinks builds share intents for a post URL. The category becomes a
// hashtag where the network supports one.
func ShareLinks(postURL, title, category string) []ShareLink {
	if postURL == "" {
		return nil
	}

	tweet := url.Values{}
	tweet.Set("url", postURL)
	tweet.Set("text", title)
	if tag := FormatHashtag(category); tag != "" {
		tweet.Set("hashtags", tag)
	}

	linkedIn := url.Values{}
	linkedIn.Set("url", postURL)

	facebook := url.Values{}
	facebook.Set("u", postURL)

	telegram := url.Values{}
	telegram.Set("url", postURL)
	telegram.Set("text", title)

	return []ShareLink{
		{Network: "x", URL: "https://twitter.com/intent/tweet?" + tweet.Encode()},
		{Network: "linkedin", URL: "https://www.linkedin.com/sharing/share-offsite/?" + linkedIn.Encode()},
		{Network: "facebook", URL: "https://www.facebook.com/sharer/sharer.php?" + facebook.Encode()},
		{Network: "telegram", URL: "https://t.me/share/url?" + telegram.Encode()},
	}
}
