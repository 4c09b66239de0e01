package pool

import "errors"

var ErrPutOnClosedPool = errors.New("cannot put job on a closed pool")
