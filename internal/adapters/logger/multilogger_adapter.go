package logger_adapter

import (
	"errors"
	"fmt"
	"io"
	"listing-service/internal/core/port"
)

// MultiLoggerAdapter рассылает записи в stdout и fluent-bit и закрывает их при остановке сервиса
type MultiLoggerAdapter struct {
	loggers []port.LoggerPort
	// closers заполнены только у корневого логгера; производные от WithFields ничего не закрывают
	closers []io.Closer
}

// NewMultiloggerAdapter рассылает каждую запись всем переданным логгерам; nil пропускаются
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (*MultiLoggerAdapter, error) {
	m := &MultiLoggerAdapter{loggers: make([]port.LoggerPort, 0, len(loggers))}
	for _, l := range loggers {
		if l == nil {
			continue
		}
		m.loggers = append(m.loggers, l)
		if c, ok := l.(io.Closer); ok {
			m.closers = append(m.closers, c)
		}
	}
	if len(m.loggers) == 0 {
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	}
	return m, nil
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Info(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Warn(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Error(msg, err, fields)
	}
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Debug(msg, fields)
	}
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	if len(fields) == 0 {
		return m
	}
	enriched := make([]port.LoggerPort, 0, len(m.loggers))
	for _, logger := range m.loggers {
		enriched = append(enriched, logger.WithFields(fields))
	}
	return &MultiLoggerAdapter{loggers: enriched}
}

// Close закрывает все логгеры с внешним соединением (fluent-bit) и возвращает объединенную ошибку
func (m *MultiLoggerAdapter) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}
