package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pb2utils "github.com/pajbot/utils"
)

// env collects every problem instead of stopping at the first one.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) fail(key string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
}

func (e *env) mustString(key string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}

	e.fail(key, fmt.Errorf("missing required environment variable"))
	return ""
}

func (e *env) string(key string, defaultValue string) string {
	if value, ok := e.lookup(key); ok {
		return value
	}

	return defaultValue
}

func (e *env) list(key string, defaultValue []string) []string {
	value, ok := e.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	return strings.Split(value, ",")
}

func (e *env) int(key string, defaultValue int) int {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}

	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v <= 0 {
		e.fail(key, fmt.Errorf("%q is not a positive number", value))
		return defaultValue
	}
	return v
}

func (e *env) duration(key string, defaultValue time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}

	if strings.TrimSpace(value) == "0" {
		return 0
	}
	d, err := pb2utils.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		e.fail(key, err)
		return defaultValue
	}
	return d
}
