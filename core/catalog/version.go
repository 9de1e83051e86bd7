package catalog

import (
	"strings"

	"golang.org/x/mod/semver"
)

// CompareVersions compares two dataset versions such as "1.4.10". Versions
// that are not valid semantic versions sort before valid ones and compare
// lexically among themselves.
func CompareVersions(a, b string) int {
	va, vb := canonical(a), canonical(b)

	switch {
	case va != "" && vb != "":
		return semver.Compare(va, vb)
	case va != "":
		return 1
	case vb != "":
		return -1
	default:
		return strings.Compare(a, b)
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
