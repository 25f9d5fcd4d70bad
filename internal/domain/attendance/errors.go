package attendance

import "errors"

var (
	ErrEventNotFound      = errors.New("attendance event not found")
	ErrInvalidQRCode      = errors.New("qr code payload is not a valid staff badge")
	ErrMalformedTimestamp = errors.New("attendance timestamp is malformed")
	ErrInvalidPair        = errors.New("check-out does not follow its check-in")
)
