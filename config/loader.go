package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultEnvPrefix is the prefix scanned for environment overrides.
const DefaultEnvPrefix = "CHATWIRE_"

// defaults returns the built-in configuration values, the lowest layer of
// the merge.
func defaults() map[string]any {
	return map[string]any{
		"connection": map[string]any{
			"address":   "irc.chat.twitch.tv:6697",
			"tls":       true,
			"nick":      "",
			"tokenEnv":  "CHATWIRE_TOKEN",
			"tokenFile": "",
		},
		"capabilities": []string{
			"twitch.tv/commands",
			"twitch.tv/membership",
			"twitch.tv/tags",
		},
		"timeouts": map[string]any{
			"activityWindow": "45s",
			"probeWindow":    "10s",
			"dial":           "10s",
		},
		"retry": map[string]any{
			"policy":       "always",
			"initialDelay": "1s",
			"maxDelay":     "2m",
			"multiplier":   2.0,
		},
		"bot": map[string]any{
			"commandPrefix": "!",
			"channels":      []string{},
			"scriptDir":     "",
		},
		"logging": map[string]any{
			"level": "info",
		},
		"ui": map[string]any{
			"enabled": true,
		},
	}
}

// loadFile parses a TOML config file. A missing file is not an error; the
// caller gets a nil map and the other layers stand alone.
func loadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return values, nil
}

// envMapping maps well-known environment variables onto setting keys.
// Variables outside the mapping are converted mechanically by envToPath.
func envMapping() map[string]string {
	return map[string]string{
		"CHATWIRE_LOGIN":     "connection.nick",
		"CHATWIRE_ADDRESS":   "connection.address",
		"CHATWIRE_CHANNELS":  "bot.channels",
		"CHATWIRE_LOG_LEVEL": "logging.level",
	}
}

// envIgnore lists variables that never enter the configuration map.
// CHATWIRE_TOKEN is a credential read by the auth package; keeping it out
// of config means snapshots and dumps can't leak it.
func envIgnore() map[string]bool {
	return map[string]bool{
		"CHATWIRE_TOKEN": true,
	}
}

// loadEnv builds a configuration layer from prefixed environment variables.
// Empty string values count as set.
func loadEnv(prefix string) map[string]any {
	values := make(map[string]any)
	mapping := envMapping()
	ignore := envIgnore()

	for env, path := range mapping {
		if ignore[env] {
			continue
		}
		if val, ok := os.LookupEnv(env); ok {
			setPath(values, path, parseValue(val))
		}
	}

	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, prefix) {
			continue
		}
		name, val, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if ignore[name] {
			continue
		}
		if _, mapped := mapping[name]; mapped {
			continue
		}
		setPath(values, envToPath(prefix, name), parseValue(val))
	}

	return values
}

// envToPath converts CHATWIRE_BOT_COMMAND_PREFIX to bot.commandPrefix: the
// first segment is the lowercased section, the rest collapse to camelCase.
func envToPath(prefix, env string) string {
	name := strings.TrimPrefix(env, prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 0 {
		return strings.ToLower(name)
	}

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

// parseValue sniffs the type of an environment value: bool, int, float,
// duration, then string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return s
}

// DeepMerge recursively merges src into dst. Values in src win; maps merge
// key by key, everything else is replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}
	return dst
}

// Clone creates a deep copy of a configuration map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[key] = Clone(v)
		case []any:
			dst[key] = cloneSlice(v)
		case []string:
			dst[key] = append([]string(nil), v...)
		default:
			dst[key] = val
		}
	}
	return dst
}

func cloneSlice(src []any) []any {
	dst := make([]any, len(src))
	for i, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[i] = Clone(v)
		case []any:
			dst[i] = cloneSlice(v)
		default:
			dst[i] = val
		}
	}
	return dst
}

// getPath retrieves a value from a nested map using a dot-separated key.
func getPath(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated key, creating
// intermediate maps as needed.
func setPath(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
