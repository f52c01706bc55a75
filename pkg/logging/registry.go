package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ComponentType classifies components for logging purposes.
type ComponentType string

const (
	ComponentTypeService  ComponentType = "service"
	ComponentTypeDatabase ComponentType = "database"
	ComponentTypeServer   ComponentType = "server"
	ComponentTypeAI       ComponentType = "ai"
	ComponentTypeTelegram ComponentType = "telegram"
	ComponentTypeWhatsApp ComponentType = "whatsapp"
	ComponentTypeNATS     ComponentType = "nats"
	ComponentTypeUtility  ComponentType = "utility"
)

// ComponentInfo describes one registered component.
type ComponentInfo struct {
	ID    string
	Type  ComponentType
	Level log.Level
}

// ComponentRegistry tracks per-component log levels. Levels come from
// LOG_LEVEL_<ID> environment variables (dashes mapped to underscores) and
// fall back to the base logger's level.
type ComponentRegistry struct {
	mu         sync.RWMutex
	components map[string]*ComponentInfo
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[string]*ComponentInfo),
	}
}

// RegisterComponent records a component. Registering the same id twice is a
// no-op so callers can register on every logger request.
func (r *ComponentRegistry) RegisterComponent(id string, componentType ComponentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.components[id]; ok {
		return nil
	}

	info := &ComponentInfo{
		ID:    id,
		Type:  componentType,
		Level: levelFromEnv(id),
	}
	r.components[id] = info
	return nil
}

// GetLoggerForComponent returns the base logger scoped to a component, with
// that component's level applied.
func (r *ComponentRegistry) GetLoggerForComponent(base *log.Logger, id string) *log.Logger {
	r.mu.RLock()
	info, ok := r.components[id]
	r.mu.RUnlock()

	logger := base.With("component", id)
	if ok && info.Level != invalidLevel {
		logger.SetLevel(info.Level)
	}
	return logger
}

// SetComponentLogLevel overrides the level for a registered component.
func (r *ComponentRegistry) SetComponentLogLevel(id string, level log.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.components[id]; ok {
		info.Level = level
	}
}

// ListComponents returns a snapshot of registered components.
func (r *ComponentRegistry) ListComponents() []*ComponentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]*ComponentInfo, 0, len(r.components))
	for _, info := range r.components {
		copied := *info
		infos = append(infos, &copied)
	}
	return infos
}

// invalidLevel marks "no override configured".
const invalidLevel = log.Level(-127)

func levelFromEnv(id string) log.Level {
	key := "LOG_LEVEL_" + strings.ToUpper(strings.ReplaceAll(id, "-", "_"))
	raw := os.Getenv(key)
	if raw == "" {
		return invalidLevel
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return invalidLevel
	}
	return level
}
