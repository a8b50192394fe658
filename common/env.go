package common

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvVars collects KEY=value pairs from a repeatable flag. It implements
// flag.Value so malformed pairs are rejected while the command line is parsed.
type EnvVars struct {
	keys   []string
	values map[string]string
}

func (e *EnvVars) Set(value string) error {
	key, val, err := ParseEnvVar(value)
	if err != nil {
		return err
	}
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = val
	return nil
}

func (e *EnvVars) String() string {
	if e == nil {
		return ""
	}
	pairs := make([]string, 0, len(e.keys))
	for _, k := range e.keys {
		pairs = append(pairs, k+"="+e.values[k])
	}
	return strings.Join(pairs, ",")
}

func (e *EnvVars) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Apply writes every pair into the process environment, replacing existing values.
func (e *EnvVars) Apply() error {
	if e == nil {
		return nil
	}
	for _, k := range e.keys {
		if err := os.Setenv(k, e.values[k]); err != nil {
			return fmt.Errorf("set environment variable %s: %w", k, err)
		}
	}
	return nil
}

// ParseEnvVar splits s on the first "=". Both key and value must be non-empty.
func ParseEnvVar(s string) (string, string, error) {
	key, value, found := strings.Cut(s, "=")
	if !found || value == "" || TrimAndCheckEmptyString(&key) {
		return "", "", &InputError{
			Message: fmt.Sprintf("not in format KEY=value: %s", s),
		}
	}
	return key, value, nil
}

// LoadDotEnv loads environment variables from a dotenv file. Unless override
// is set, variables already present in the environment are left alone. An
// empty path means ./.env, which may be absent.
func LoadDotEnv(path string, override bool) error {
	optional := TrimAndCheckEmptyString(&path)
	if optional {
		path = ".env"
	}
	log.Printf("loading environment variables from %s (override=%t)", path, override)
	var err error
	if override {
		err = godotenv.Overload(path)
	} else {
		err = godotenv.Load(path)
	}
	if optional && errors.Is(err, fs.ErrNotExist) {
		log.Printf("no %s file found, nothing to load", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load dotenv file %s: %w", path, err)
	}
	return nil
}
