package ports

import "io"

//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks

// Logger is the driver's ambient logging capability.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	SetOutput(w io.Writer)
}
