package routes

import "net/http"

const (
	ROOT = "/"

	OVERRIDES           = ROOT + "overrides" // manual DNS override entries
	OVERRIDES_HASH      = OVERRIDES + "/hash"
	OVERRIDES_HOST      = OVERRIDES + "/{hostname}"
	GET_OVERRIDES       = http.MethodGet + " " + OVERRIDES
	GET_OVERRIDE        = http.MethodGet + " " + OVERRIDES_HOST
	GET_OVERRIDES_HASH  = http.MethodGet + " " + OVERRIDES_HASH // hash over all entries, for shell-side cache validation
	POST_OVERRIDE       = http.MethodPost + " " + OVERRIDES
	DELETE_OVERRIDE     = http.MethodDelete + " " + OVERRIDES_HOST
	DELETE_ALL_OVERRIDE = http.MethodDelete + " " + OVERRIDES

	RESOLVE     = ROOT + "resolve"
	GET_RESOLVE = http.MethodGet + " " + RESOLVE + "/{hostname}"

	NAVIGATE      = ROOT + "navigate"
	POST_NAVIGATE = http.MethodPost + " " + NAVIGATE

	BOOKMARKS       = ROOT + "bookmarks"
	BOOKMARKS_INDEX = BOOKMARKS + "/{index}"
	GET_BOOKMARKS   = http.MethodGet + " " + BOOKMARKS
	POST_BOOKMARK   = http.MethodPost + " " + BOOKMARKS
	DELETE_BOOKMARK = http.MethodDelete + " " + BOOKMARKS_INDEX

	DRIFT     = ROOT + "drift" // overrides diverging from the authoritative zone
	GET_DRIFT = http.MethodGet + " " + DRIFT

	AUTH            = ROOT + "auth"
	AUTH_LOGIN      = AUTH + "/login"
	POST_AUTH_LOGIN = http.MethodPost + " " + AUTH_LOGIN

	METRICS     = ROOT + "metrics"
	GET_METRICS = http.MethodGet + " " + METRICS
)
