package drift

import "time"

const (
	DEFAULT_POLL_INTERVAL = time.Minute * 5
	DEFAULT_TIMEOUT       = time.Second * 5
)
