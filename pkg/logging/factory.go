package logging

import (
	"github.com/charmbracelet/log"
)

// Factory provides component-aware loggers with consistent field naming.
type Factory struct {
	baseLogger        *log.Logger
	componentRegistry *ComponentRegistry
}

// NewFactory creates a new logger factory.
func NewFactory(baseLogger *log.Logger) *Factory {
	return &Factory{
		baseLogger:        baseLogger,
		componentRegistry: NewComponentRegistry(),
	}
}

// ForComponent creates a logger for a specific component.
func (lf *Factory) ForComponent(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeUtility)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForService creates a logger for service components.
func (lf *Factory) ForService(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeService)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForDatabase creates a logger for database components.
func (lf *Factory) ForDatabase(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeDatabase)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForServer creates a logger for server components.
func (lf *Factory) ForServer(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeServer)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForAI creates a logger for AI components.
func (lf *Factory) ForAI(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeAI)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForTelegram creates a logger for Telegram components.
func (lf *Factory) ForTelegram(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeTelegram)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForWhatsApp creates a logger for WhatsApp components.
func (lf *Factory) ForWhatsApp(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeWhatsApp)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// ForNATS creates a logger for NATS components.
func (lf *Factory) ForNATS(id string) *log.Logger {
	_ = lf.componentRegistry.RegisterComponent(id, ComponentTypeNATS)
	return lf.componentRegistry.GetLoggerForComponent(lf.baseLogger, id)
}

// WithUserID adds user context to a logger.
func (lf *Factory) WithUserID(logger *log.Logger, userID string) *log.Logger {
	return logger.With("user_id", userID)
}

// WithError adds error context to a logger.
func (lf *Factory) WithError(logger *log.Logger, err error) *log.Logger {
	if err != nil {
		return logger.With("error", err.Error())
	}
	return logger
}

// GetComponentRegistry returns the component registry for configuration.
func (lf *Factory) GetComponentRegistry() *ComponentRegistry {
	return lf.componentRegistry
}
