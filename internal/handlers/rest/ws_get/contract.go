//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ws_get_test
package ws_get

import (
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
