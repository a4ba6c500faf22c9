package seo

import "strings"

// RobotsTxt renders robots.txt allowing everything and pointing at the sitemap.
func RobotsTxt(b URLBuilder) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n\n")
	sb.WriteString("Sitemap: " + b.Absolute("/sitemap.xml") + "\n")
	return sb.String()
}
