package utils

import (
	"fmt"
	"strings"
)

// BCType is the symbolic boundary tag handed to the stepping engine for each domain edge
type BCType uint16

const (
	// BCNone indicates no boundary condition has been assigned
	BCNone BCType = iota
	BCPeriodic
	// BCExtrapolate is zero-order extrapolation, an open (outflow) edge
	BCExtrapolate
)

func (bc BCType) String() string {
	switch bc {
	case BCNone:
		return "None"
	case BCPeriodic:
		return "Periodic"
	case BCExtrapolate:
		return "Extrapolate"
	}
	return "Unknown"
}

// BCNameMap maps lowercase names, including the usual aliases, to BCType
var BCNameMap = map[string]BCType{
	"none":        BCNone,
	"periodic":    BCPeriodic,
	"extrap":      BCExtrapolate,
	"extrapolate": BCExtrapolate,
	"open":        BCExtrapolate,
	"outflow":     BCExtrapolate,
}

// ParseBCName converts a boundary condition name to BCType, case-insensitive
func ParseBCName(name string) (bc BCType, err error) {
	var (
		ok        bool
		lowerName = strings.ToLower(strings.TrimSpace(name))
	)
	if bc, ok = BCNameMap[lowerName]; !ok {
		err = fmt.Errorf("unknown boundary condition name %q", name)
	}
	return
}

// MarshalText lets the tags serialize by name
func (bc BCType) MarshalText() ([]byte, error) {
	return []byte(bc.String()), nil
}

func (bc *BCType) UnmarshalText(text []byte) (err error) {
	*bc, err = ParseBCName(string(text))
	return
}
