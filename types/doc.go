// Package types provides core types used across the ideastorm engine.
// This package has ZERO dependencies on other ideastorm packages to avoid
// circular imports. All other packages should import types from here.
package types
