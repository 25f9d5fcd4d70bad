package classsession

import "errors"

var ErrSessionNotFound = errors.New("class session not found")
