package localstore

import "errors"

var ErrNotFound = errors.New("localstore: record not found")
