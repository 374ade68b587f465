package models

// Result is a single ranked hit from a web search provider.
type Result struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet"`
	RawContent string `json:"raw_content,omitempty"`
}

// Options tunes one search call. Depth is provider-specific ("basic" or
// "advanced"); IncludeDomains restricts results to the given hosts.
type Options struct {
	Depth          string
	MaxResults     int
	IncludeDomains []string
	IncludeRaw     bool
}
