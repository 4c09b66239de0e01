package model

// Hash carries the digest of the full override table, used by shells to
// cheaply detect entry changes.
type Hash struct {
	Hash string `json:"hash"`
}
