package score

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces fresh unique identifiers.
type IDGenerator func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Option configures the construction of scores, graphs, nodes and edges.
type Option func(*Settings)

// Settings is the resolved set of construction options. Options that do not
// apply to a given constructor are ignored.
type Settings struct {
	ID            string
	LoadingPolicy LoadingPolicy
	SourcePort    string
	TargetPort    string
	Version       string

	generate IDGenerator
}

// WithID sets an explicit identifier.
func WithID(id string) Option {
	return func(s *Settings) {
		s.ID = id
	}
}

// WithIDGenerator sets the generator used when no explicit id is given.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Settings) {
		s.generate = gen
	}
}

// WithLoadingPolicy overrides the default AllContentPlaythrough policy.
func WithLoadingPolicy(policy LoadingPolicy) Option {
	return func(s *Settings) {
		s.LoadingPolicy = policy
	}
}

// WithSourcePort labels the source port of an edge.
func WithSourcePort(port string) Option {
	return func(s *Settings) {
		s.SourcePort = port
	}
}

// WithTargetPort labels the target port of an edge.
func WithTargetPort(port string) Option {
	return func(s *Settings) {
		s.TargetPort = port
	}
}

// WithVersion sets the format version of a score.
func WithVersion(version string) Option {
	return func(s *Settings) {
		s.Version = version
	}
}

// Resolve applies opts over the defaults and fills in a generated id when none
// was supplied.
func Resolve(opts ...Option) Settings {
	s := Settings{
		LoadingPolicy: AllContentPlaythrough,
		generate:      NewID,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if s.ID == "" && s.generate != nil {
		s.ID = s.generate()
	}

	return s
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ... It is meant
// for tests and examples that need stable ids.
func SequentialIDs(prefix string) IDGenerator {
	n := 0

	return func() string {
		n++

		return prefix + "-" + strconv.Itoa(n)
	}
}
