package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"listing-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const eventsRoot = "events"

// Registry - скомпилированные схемы событий по ключу "<EventType>/<version>"
type Registry struct {
	compiled map[string]*jsonschema.Schema
}

// LoadRegistry компилирует все *.json из каталога events файловой системы.
// Сначала все схемы добавляются как ресурсы, чтобы $ref между ними разрешались.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, eventsRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		file, err := fsys.Open(p)
		if err != nil {
			return fmt.Errorf("open schema %s: %w", p, err)
		}
		defer file.Close()
		if err := compiler.AddResource(p, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", p, err)
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	r := &Registry{compiled: make(map[string]*jsonschema.Schema, len(paths))}
	for _, p := range paths {
		key := generateKeyFromPath(p)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not match events/<name>/v<major>.json", p)
		}
		schema, err := compiler.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", p, err)
		}
		r.compiled[key] = schema
	}
	return r, nil
}

// generateKeyFromPath преобразует путь вида "events/listing-changed/v1.json"
// в ключ вида "ListingChangedEvent/1.0.0".
func generateKeyFromPath(p string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(p, eventsRoot+"/"), ".json")

	eventDir, versionFile := path.Split(trimmed)
	eventDir = strings.TrimSuffix(eventDir, "/")
	if eventDir == "" || strings.Contains(eventDir, "/") || !strings.HasPrefix(versionFile, "v") || len(versionFile) < 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, part := range strings.Split(eventDir, "-") {
		name.WriteString(caser.String(part))
	}
	name.WriteString("Event")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(versionFile, "v"))
}

// Keys возвращает ключи зарегистрированных схем
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.compiled))
	for k := range r.compiled {
		keys = append(keys, k)
	}
	return keys
}

// ValidateEvent проверяет тело сообщения по схеме его типа и версии
func (r *Registry) ValidateEvent(eventType, eventVersion string, body []byte) error {
	key := fmt.Sprintf("%s/%s", eventType, eventVersion)
	schema, ok := r.compiled[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return LoadRegistry(schemas.SchemasFS)
})

// DefaultRegistry - реестр встроенных схем сервиса
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}

// ValidateEvent проверяет событие по встроенным схемам
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	r, err := defaultRegistry()
	if err != nil {
		return fmt.Errorf("schema registry unavailable: %w", err)
	}
	return r.ValidateEvent(eventType, eventVersion, body)
}
