package rabbitmq_common

// Logger - минимальный key-value логгер пакета; сервисы подключают к нему свой LoggerPort через мост
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})        {}
func (noopLogger) Info(string, ...interface{})         {}
func (noopLogger) Warn(string, ...interface{})         {}
func (noopLogger) Error(error, string, ...interface{}) {}

// OrNoop подставляет пустой логгер, если сервис свой не передал
func OrNoop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}
