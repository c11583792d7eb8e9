// Package callers loads the trusted-caller registry.
package callers

import (
	"fmt"
	"os"
	"regexp"

	"coupon-budget-service/internal/domain/auth"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Callers []callerEntry `yaml:"callers"`
}

type callerEntry struct {
	ServiceID     string   `yaml:"service_id"`
	ClientKeyHash string   `yaml:"client_key_hash"`
	Permissions   []string `yaml:"permissions"`
}

// Registry is immutable after load and safe for concurrent use.
type Registry struct {
	byID map[string]auth.Caller
}

// only the braced form is expanded; bcrypt hashes contain bare '$'
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadFile reads path, expanding ${VAR} references before parsing.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("callers: read %s: %w", path, err)
	}
	expanded := envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		return []byte(os.Getenv(string(name)))
	})
	return Parse(expanded)
}

func Parse(data []byte) (*Registry, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("callers: parse: %w", err)
	}

	r := &Registry{byID: make(map[string]auth.Caller, len(f.Callers))}
	for i, e := range f.Callers {
		perms, err := auth.ParsePermissions(e.Permissions)
		if err != nil {
			return nil, fmt.Errorf("callers: caller[%d] %q: %w", i, e.ServiceID, err)
		}
		c, err := auth.NewCaller(e.ServiceID, e.ClientKeyHash, perms)
		if err != nil {
			return nil, fmt.Errorf("callers: caller[%d]: %w", i, err)
		}
		if _, dup := r.byID[c.ServiceID()]; dup {
			return nil, fmt.Errorf("callers: duplicate service id %q", c.ServiceID())
		}
		r.byID[c.ServiceID()] = c
	}
	return r, nil
}

func NewRegistry(callers ...auth.Caller) *Registry {
	r := &Registry{byID: make(map[string]auth.Caller, len(callers))}
	for _, c := range callers {
		r.byID[c.ServiceID()] = c
	}
	return r
}

func (r *Registry) Find(serviceID string) (auth.Caller, bool) {
	c, ok := r.byID[serviceID]
	return c, ok
}

func (r *Registry) Len() int {
	return len(r.byID)
}
