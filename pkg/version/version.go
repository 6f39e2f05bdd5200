package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/systemstart/modbuild/pkg/api"
)

// Version is a 4-part module version. The revision component is informational
// only and is always reset by an increment.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Revision int
}

// Default is the version used when neither source control nor the module
// manifest yields one.
var Default = Version{Major: 1}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
}

// Parse reads a dotted version with 2 to 4 components, tolerating one
// leading "v" or "V". Missing trailing components are zero.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("version %q: expected 2 to 4 dotted components", s)
	}

	nums := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version %q: component %q is not a non-negative integer", s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Revision: nums[3]}, nil
}

// Increment bumps the component selected by the release type and zeroes
// everything below it. Revision is always reset.
func (v Version) Increment(rt api.ReleaseType) Version {
	switch rt {
	case api.ReleaseTypeMajor:
		return Version{Major: v.Major + 1}
	case api.ReleaseTypeMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
