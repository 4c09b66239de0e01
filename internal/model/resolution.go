package model

type ResolutionSource string

const (
	SourceOverride ResolutionSource = "override"
	SourceSystem   ResolutionSource = "system"
	SourceNone     ResolutionSource = "none"
)

// Resolution is the answer for a single hostname lookup. Address is empty
// when Source is none.
type Resolution struct {
	Hostname string           `json:"hostname"`
	Address  string           `json:"address,omitempty"`
	Source   ResolutionSource `json:"source"`
}

func (r Resolution) Resolved() bool {
	return r.Source != SourceNone
}
