package domain

// UrlStats is one short-link record. The natural key is (URL, UserID); a
// record is created on the first minify of that pair and updated in place
// afterwards. MinifiedURL is assigned exactly once at creation and is unique
// across all records.
//
// Lifecycle: absent → created (minify_count=1) → updated (minify_count++ on
// re-minify, redirect_count++ on resolution). Normal flow never deletes a
// record; removal is a separate administrative operation.
type UrlStats struct {
	URL           string `json:"url" bson:"url"`
	UserID        string `json:"userId" bson:"user_id"`
	MinifiedURL   string `json:"minifiedUrl" bson:"minified_url"`
	MinifyCount   int64  `json:"minifyCount" bson:"minify_count"`
	RedirectCount int64  `json:"redirectCount" bson:"redirect_count"`
}
