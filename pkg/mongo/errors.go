package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("mongo: failed to connect")
	ErrMissingDatabase        = errors.New("mongo: database name is empty")
	ErrHealthcheckFailed      = errors.New("mongo: healthcheck failed")
)
