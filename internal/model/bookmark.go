package model

type Bookmark struct {
	Title string `json:"title"`
	URL   string `json:"url"`

	// set on listings when the monitor probes the bookmark's host, never
	// persisted
	Reachable *bool `json:"reachable,omitempty"`
}
