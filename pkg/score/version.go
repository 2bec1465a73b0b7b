package score

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// CurrentVersion is the score format version produced by this module.
const CurrentVersion = "1.2.12"

// ErrInvalidVersion is returned by ParseVersion for malformed version strings.
var ErrInvalidVersion = errors.New("invalid version")

// Version is a parsed score format version: major.minor.patch[-pre][+build].
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease []string
	Build      []string
}

// ParseVersion parses a score format version. All three numeric components are
// required.
func ParseVersion(s string) (Version, error) {
	v := "v" + s
	if !semver.IsValid(v) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	core := s
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q needs major.minor.patch", ErrInvalidVersion, s)
	}

	nums := make([]int, 3)

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}

		nums[i] = n
	}

	version := Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}

	if pre := semver.Prerelease(v); pre != "" {
		version.Prerelease = strings.Split(pre[1:], ".")
	}

	if build := semver.Build(v); build != "" {
		version.Build = strings.Split(build[1:], ".")
	}

	return version, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}

	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)

	if len(v.Prerelease) > 0 {
		s += "-" + strings.Join(v.Prerelease, ".")
	}

	if len(v.Build) > 0 {
		s += "+" + strings.Join(v.Build, ".")
	}

	return s
}

// Compare returns -1, 0 or +1 following semantic version precedence. Build
// metadata is ignored.
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.String(), "v"+other.String())
}

// Compatible reports whether documents at v can be read by a consumer of other,
// i.e. both share the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}
