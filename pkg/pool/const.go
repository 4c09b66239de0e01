package pool

import "time"

// idle workers above the configured minimum stop themselves after this duration
const IDLESTOP = time.Second * 30
