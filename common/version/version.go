// Package version holds the toolkit's build version, reported by both
// scened and scenectl at startup.
package version

import "github.com/blang/semver"

// Current is the running build's version.
var Current = semver.MustParse("0.1.0")
