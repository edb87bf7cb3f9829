package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownComputeType is returned when a compute type string is not recognised
var ErrUnknownComputeType = errors.New("unknown compute type")

// ComputeType selects how a work item's base quantity is measured
type ComputeType int

const (
	Simple ComputeType = iota
	Custom
	Rebar
)

// String method for ComputeType enum
func (c ComputeType) String() string {
	switch c {
	case Simple:
		return "simple"
	case Custom:
		return "custom"
	case Rebar:
		return "rebar"
	default:
		return "unknown"
	}
}

// ParseComputeType converts a wire value into a ComputeType
func ParseComputeType(s string) (ComputeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return Simple, nil
	case "custom":
		return Custom, nil
	case "rebar":
		return Rebar, nil
	default:
		return Simple, fmt.Errorf("%w: %q (expected simple, custom or rebar)", ErrUnknownComputeType, s)
	}
}
