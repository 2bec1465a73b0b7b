package typed

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainValidation indicates a type-correct value that the node kind rejects.
	ErrDomainValidation = errors.New("domain validation failed")

	// ErrConnection indicates an edge that the typed connection rules forbid.
	ErrConnection = errors.New("connection not allowed")
)

// DomainError reports a field value rejected by a node kind's validation.
type DomainError struct {
	Kind     string // Plugin kind of the node
	Property string // Wire name of the offending field
	Msg      string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s.%s %s", ErrDomainValidation, e.Kind, e.Property, e.Msg)
}

func (e *DomainError) Unwrap() error { return ErrDomainValidation }

// ConnectionReason names the rule a rejected connection broke.
type ConnectionReason string

const (
	ReasonNoOutputs      ConnectionReason = "source has no outputs"
	ReasonNoInputs       ConnectionReason = "target has no inputs"
	ReasonSelfConnection ConnectionReason = "cannot connect a node to itself"
)

// ConnectionError is returned by the strict typed connect.
type ConnectionError struct {
	Source string
	Target string
	Reason ConnectionReason
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrConnection, e.Source, e.Target, e.Reason)
}

func (e *ConnectionError) Unwrap() error { return ErrConnection }

// LowerError annotates a validation failure with the node being lowered.
type LowerError struct {
	NodeID string
	Kind   string
	Err    error
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("lowering node %s (%s): %v", e.NodeID, e.Kind, e.Err)
}

func (e *LowerError) Unwrap() error { return e.Err }
