package deps

import "strings"

// DenyList is the set of license identifiers that constitute a violation.
// Entries are normalized (trimmed, case-folded) once at construction; the
// list is immutable for the run.
type DenyList struct {
	entries map[string]struct{}
}

// NewDenyList builds a deny-list from configured identifiers. Empty entries
// are ignored.
func NewDenyList(avoid []string) DenyList {
	entries := make(map[string]struct{}, len(avoid))
	for _, a := range avoid {
		if norm := normalizeLicense(a); norm != "" {
			entries[norm] = struct{}{}
		}
	}
	return DenyList{entries: entries}
}

// Denied reports whether a single license identifier is on the list.
// Matching is against the normalized identifier, never license text.
func (d DenyList) Denied(license string) bool {
	_, ok := d.entries[normalizeLicense(license)]
	return ok
}

// Len returns the number of denied identifiers.
func (d DenyList) Len() int {
	return len(d.entries)
}

// Classify decides a package's verdict from its declared license
// identifiers. It is a pure function of its inputs.
//
// Policy: a package FAILS when ANY of its declared licenses is denied. A
// dual-licensed package with one denied option fails even though a consumer
// could select the other option, because nothing guarantees they will.
func Classify(licenses []string, deny DenyList) Verdict {
	if len(licenses) == 0 {
		return VerdictUnknown
	}
	for _, l := range licenses {
		if deny.Denied(l) {
			return VerdictFail
		}
	}
	return VerdictPass
}

func normalizeLicense(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
