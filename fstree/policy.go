package fstree

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ConflictPolicy decides what happens when an entry reuses a sibling's name
// with a different kind, or a file is listed again with a different size.
type ConflictPolicy uint8

const (
	// ConflictReject aborts the replay with ErrNameConflict.
	ConflictReject ConflictPolicy = iota
	// ConflictLastWriteWins retires the earlier entry and keeps the later one.
	ConflictLastWriteWins
)

var _ pflag.Value = (*ConflictPolicy)(nil)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictReject:
		return "reject"
	case ConflictLastWriteWins:
		return "last-write-wins"
	}
	return fmt.Sprintf("ConflictPolicy(%d)", uint8(p))
}

// ParseConflictPolicy parses the String form of a policy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch s {
	case "reject":
		return ConflictReject, nil
	case "last-write-wins", "lww":
		return ConflictLastWriteWins, nil
	}
	return ConflictReject, fmt.Errorf("unknown conflict policy %q (want reject or last-write-wins)", s)
}

// Set implements pflag.Value.
func (p *ConflictPolicy) Set(s string) error {
	v, err := ParseConflictPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *ConflictPolicy) Type() string {
	return "policy"
}
