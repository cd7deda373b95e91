package handler

type minifyRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type statsByURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type searchStatsRequest struct {
	Pattern string `json:"pattern" validate:"required"`
}

// urlStatsResponse mirrors one short-link record.
type urlStatsResponse struct {
	URL           string `json:"url"`
	UserID        string `json:"userId,omitempty"`
	MinifiedURL   string `json:"minifiedUrl"`
	MinifyCount   int64  `json:"minifyCount"`
	RedirectCount int64  `json:"redirectCount"`
}
