package file

import "errors"

var ErrNoDocument = errors.New("storage file does not exist")
