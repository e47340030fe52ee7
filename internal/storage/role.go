package storage

import (
	"path/filepath"
	"strings"

	"github.com/mrz1836/fsctl/internal/constants"
)

// Role selects how a storage file is opened.
type Role int

const (
	// RoleData is any file without special handling.
	RoleData Role = iota
	// RoleTree holds tree nodes. It is never locked.
	RoleTree
	// RoleBitfield holds the bitfield. It is the file that gets locked.
	RoleBitfield
)

// String returns the role name used in logs and CLI output.
func (r Role) String() string {
	switch r {
	case RoleTree:
		return "tree"
	case RoleBitfield:
		return "bitfield"
	default:
		return "data"
	}
}

// RoleOf classifies a storage name by its last path element. "tree" and
// "a/b/tree" are trees, "bitfield" and "a/bitfield" are bitfields.
func RoleOf(name string) Role {
	name = filepath.ToSlash(name)
	switch {
	case isNamed(name, constants.TreeFileName):
		return RoleTree
	case isNamed(name, constants.BitfieldFileName):
		return RoleBitfield
	default:
		return RoleData
	}
}

func isNamed(name, base string) bool {
	return name == base || strings.HasSuffix(name, "/"+base)
}
