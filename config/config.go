// Package config holds the externally supplied settings of a run. Values
// come from flags or MOVIEGRAPH_* environment variables (kong struct tags)
// and are checked at startup with Validate.
package config

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Store selects and authenticates against the graph store.
type Store struct {
	URI      string `name:"store-uri" env:"MOVIEGRAPH_STORE_URI" help:"Graph store address: dgraph://host:9080, file:///dir, neo4j://host:7687, bolt://host:7687 or memory://." validate:"required,uri"`
	Username string `name:"store-user" env:"MOVIEGRAPH_STORE_USER" help:"Graph store principal."`
	Password string `name:"store-password" env:"MOVIEGRAPH_STORE_PASSWORD" help:"Graph store credential."`
	Database string `name:"store-database" env:"MOVIEGRAPH_STORE_DATABASE" help:"Neo4j database name; empty uses the server default."`
}

// Input names the two CSV exports.
type Input struct {
	Movies  string `name:"movies" env:"MOVIEGRAPH_MOVIES_CSV" help:"Movies CSV file." type:"path" validate:"required,file"`
	Credits string `name:"credits" env:"MOVIEGRAPH_CREDITS_CSV" help:"Credits CSV file." type:"path" validate:"required,file"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `name:"log-level" env:"MOVIEGRAPH_LOG_LEVEL" help:"Log level." default:"info" enum:"debug,info,warn,error" validate:"oneof=debug info warn error"`
}

// Metrics configures the optional Pushgateway export.
type Metrics struct {
	PushURL string `name:"metrics-push-url" env:"MOVIEGRAPH_METRICS_PUSH_URL" help:"Prometheus Pushgateway to push run metrics to." validate:"omitempty,url"`
}

// Backend identifies a graph store implementation.
type Backend string

const (
	BackendDgraph Backend = "dgraph"
	BackendNeo4j  Backend = "neo4j"
	BackendMemory Backend = "memory"
)

var schemes = map[string]Backend{
	"dgraph":    BackendDgraph,
	"file":      BackendDgraph,
	"neo4j":     BackendNeo4j,
	"neo4j+s":   BackendNeo4j,
	"neo4j+ssc": BackendNeo4j,
	"bolt":      BackendNeo4j,
	"bolt+s":    BackendNeo4j,
	"bolt+ssc":  BackendNeo4j,
	"memory":    BackendMemory,
}

// ErrUnsupportedScheme is returned for a store URI no backend handles.
var ErrUnsupportedScheme = errors.New("unsupported store URI scheme")

// Backend returns the implementation selected by the URI scheme.
func (s *Store) Backend() (Backend, error) {
	u, err := url.Parse(s.URI)
	if err != nil {
		return "", errors.Wrap(err, "parsing MOVIEGRAPH_STORE_URI")
	}
	b, ok := schemes[strings.ToLower(u.Scheme)]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedScheme, "%q", u.Scheme)
	}
	return b, nil
}

// Validate checks required values and backend specific rules.
func (s *Store) Validate() error {
	if err := check(s); err != nil {
		return err
	}
	b, err := s.Backend()
	if err != nil {
		return err
	}
	if b == BackendNeo4j && s.Username == "" {
		return errors.New("MOVIEGRAPH_STORE_USER is required for neo4j")
	}
	return nil
}

// Validate checks that both input files exist.
func (i *Input) Validate() error { return check(i) }

// Validate checks the log level.
func (l *Logging) Validate() error { return check(l) }

// Validate checks the push URL.
func (m *Metrics) Validate() error { return check(m) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New("invalid configuration: " + strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "file":
		return fe.Field() + " must name an existing file, got " + quote(fe.Value())
	case "uri", "url":
		return fe.Field() + " must be a URL, got " + quote(fe.Value())
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param() + ", got " + quote(fe.Value())
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

func quote(v any) string {
	s, _ := v.(string)
	return "\"" + s + "\""
}
