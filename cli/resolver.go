package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tracer/pkg"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML configuration
// files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Nested mappings are flattened by joining keys with hyphens, so both of the
// following documents set --trace-severity and --log-level:
//
//	trace-severity: error,warning
//	log_level: debug
//
//	trace:
//	  severity: [error, warning]
//	log:
//	  level: debug
//
// Sequences are joined with commas. Command-line flags override config file
// values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		var doc map[string]any

		err = yaml.UnmarshalContext(ctx, data, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, pkg.ErrReadConfig.Wrap(err)
		}

		cfg := config{}
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for flattened YAML documents.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error {
	// Unknown keys are ignored so one file can serve several versions.
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flatten stores every scalar reachable from node under its hyphen-joined
// key path.
func (c config) flatten(prefix string, node any) {
	join := func(key any) string {
		name := fmt.Sprint(key)
		if prefix == "" {
			return name
		}

		return prefix + "-" + name
	}

	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			c.flatten(join(key), val)
		}

	case map[any]any:
		for key, val := range v {
			c.flatten(join(key), val)
		}

	default:
		if prefix != "" {
			c[prefix] = scalar(v)
		}
	}
}

// scalar converts a decoded YAML value to the form Kong's mappers accept.
func scalar(v any) any {
	switch v := v.(type) {
	// Kong requires numbers as strings for parsing
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		part := make([]string, 0, len(v))
		for _, elem := range v {
			part = append(part, fmt.Sprint(scalar(elem)))
		}

		return strings.Join(part, ",")

	default:
		return v
	}
}
