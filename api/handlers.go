package api

import (
	"time"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time, now func() time.Time) *routeHandlers {
	return &routeHandlers{
		pageHandler: newPageHandler(deps.Pages),
		blogHandler: newBlogHandler(deps.Pages),
		seoHandler:  newSEOHandler(deps.Pages, startupTime, now),
	}
}
