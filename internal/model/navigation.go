package model

// Navigation is what the shell renders after submitting the address bar:
// the URL to load and the DNS status label to show next to it.
type Navigation struct {
	Input      string     `json:"input"`
	URL        string     `json:"url"`
	Host       string     `json:"host,omitempty"`
	Status     string     `json:"status"`
	Resolution Resolution `json:"resolution"`
}
