// Package settings exposes the catalog of recognized user settings and their
// persistence on top of the state store. Values are sanitized (coerced to the
// catalog-declared type) before they ever reach disk.
package settings

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xoseperez/platformio/internal/state"
)

// settingsKey is the top-level state document key holding stored settings.
const settingsKey = "settings"

// envPrefix builds the per-setting environment override name.
const envPrefix = "PLATFORMIO_SETTING_"

// Definition describes one recognized setting.
type Definition struct {
	Description string
	Default     any
}

// catalog lists every recognized setting with its default. Defaults double
// as the type declaration for sanitization.
var catalog = map[string]Definition{ //nolint:gochecknoglobals // Static catalog
	"check_platformio_interval": {
		Description: "Check for the new PlatformIO interval (days)",
		Default:     3,
	},
	"check_platforms_interval": {
		Description: "Check for the platform updates interval (days)",
		Default:     7,
	},
	"check_libraries_interval": {
		Description: "Check for the library updates interval (days)",
		Default:     7,
	},
	"auto_update_platforms": {
		Description: "Automatically update platforms (Yes/No)",
		Default:     false,
	},
	"auto_update_libraries": {
		Description: "Automatically update libraries (Yes/No)",
		Default:     false,
	},
	"force_verbose": {
		Description: "Force verbose output when processing environments",
		Default:     false,
	},
	"enable_ssl": {
		Description: "Enable SSL for PlatformIO Services",
		Default:     false,
	},
	"enable_telemetry": {
		Description: "Telemetry service (Yes/No)",
		Default:     true,
	},
}

// InvalidNameError reports an unrecognized setting name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid setting name %q", e.Name)
}

// InvalidValueError reports a value that could not be coerced to the
// setting's declared type.
type InvalidValueError struct {
	Name  string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for setting %q", e.Value, e.Name)
}

// Names returns the recognized setting names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the catalog entry for name.
func Describe(name string) (Definition, error) {
	def, ok := catalog[name]
	if !ok {
		return Definition{}, &InvalidNameError{Name: name}
	}
	return def, nil
}

// Sanitize coerces value to the declared type of the named setting.
// Booleans accept case-insensitive {true, yes, y, 1} as true and anything
// else as false; integers parse via strconv. Unknown names and unparseable
// integers are validation errors, never panics.
func Sanitize(name string, value any) (any, error) {
	def, ok := catalog[name]
	if !ok {
		return nil, &InvalidNameError{Name: name}
	}

	switch def.Default.(type) {
	case bool:
		if b, isBool := value.(bool); isBool {
			return b, nil
		}
		switch strings.ToLower(fmt.Sprint(value)) {
		case "true", "yes", "y", "1":
			return true, nil
		default:
			return false, nil
		}
	case int:
		switch v := value.(type) {
		case int:
			return v, nil
		case float64:
			// JSON numbers decode as float64.
			return int(v), nil
		default:
			n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(value)))
			if err != nil {
				return nil, &InvalidValueError{Name: name, Value: value}
			}
			return n, nil
		}
	default:
		return value, nil
	}
}

// Get resolves the named setting: environment override first, then the
// stored value, then the catalog default. Overrides pass through the same
// sanitization as stored values.
func Get(ctx context.Context, name string) (any, error) {
	def, ok := catalog[name]
	if !ok {
		return nil, &InvalidNameError{Name: name}
	}

	if raw, found := os.LookupEnv(envOverrideName(name)); found {
		return Sanitize(name, raw)
	}

	stored, err := state.GetItem(ctx, settingsKey, nil)
	if err != nil {
		return nil, err
	}
	if m, isMap := stored.(map[string]any); isMap {
		if v, present := m[name]; present {
			return normalize(def, v), nil
		}
	}

	return def.Default, nil
}

// Set sanitizes and persists the named setting under lock. Sanitization
// runs before the write scope opens so a validation error cannot touch the
// state file.
func Set(ctx context.Context, name string, value any) error {
	clean, err := Sanitize(name, value)
	if err != nil {
		return err
	}

	store, err := state.New("", state.WithLock())
	if err != nil {
		return err
	}
	return store.With(ctx, func(doc state.Document) error {
		m, isMap := doc[settingsKey].(map[string]any)
		if !isMap {
			m = map[string]any{}
			doc[settingsKey] = m
		}
		m[name] = clean
		return nil
	})
}

// Reset drops every stored setting, reverting all names to their defaults.
func Reset(ctx context.Context) error {
	return state.DeleteItem(ctx, settingsKey)
}

// envOverrideName maps a setting name to its environment override,
// e.g. enable_telemetry -> PLATFORMIO_SETTING_ENABLE_TELEMETRY.
func envOverrideName(name string) string {
	return envPrefix + strings.ToUpper(name)
}

// normalize fixes up JSON decoding artifacts on stored values so callers
// always see the catalog-declared type.
func normalize(def Definition, value any) any {
	if _, isInt := def.Default.(int); isInt {
		if f, isFloat := value.(float64); isFloat {
			return int(f)
		}
	}
	return value
}
