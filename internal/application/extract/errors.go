package extract

import "errors"

var (
	ErrNoRecordSource = errors.New("record source is not configured")
	ErrNoVIPSource    = errors.New("vip source is not configured")
)
