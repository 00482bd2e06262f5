// Package assure compiles flat command arguments into the ordered directive
// lists consumed by the external upgrade-assurance evaluator. Compilation is
// a pure function of its inputs: no device access, no shared state, and
// identical inputs always produce identical directive lists.
package assure

import (
	"github.com/hashicorp/go-multierror"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/directive"
)

// ReadinessOptions is the immutable argument record for a readiness-check
// compilation. Empty strings and nil pointers mean "not supplied".
type ReadinessOptions struct {
	// Checks is the requested check list in user-facing names. When empty,
	// a default list is substituted; an explicitly empty list is not
	// distinguishable from an omitted one.
	Checks []string

	MinContentVersion string
	CandidateVersion  string
	DPMPClockDiff     *int
	IPSecTunnelStatus string
	SessionExists     string
	ARPEntryExists    string

	// HAEnabled gates the inclusion of the ha check in the default list.
	HAEnabled bool
}

// CompileReadinessChecks produces the ordered directive list for a
// readiness-check run: the surviving bare checks in list order, followed by
// the parameterized checks in a fixed processing order.
//
// A requested check whose required parameter is missing is dropped rather
// than submitted bare. The one exception is free_disk_space, which is always
// present in exactly one form whether or not the caller asked for it.
func CompileReadinessChecks(opts ReadinessOptions) ([]directive.Directive, error) {
	bare := resolveCheckList(opts.Checks, opts.HAEnabled)

	if err := validateReadinessOptions(opts, bare); err != nil {
		return nil, err
	}

	var custom []directive.Directive

	if containsCheck(bare, CheckContentVersion) {
		bare = removeCheck(bare, CheckContentVersion)
		if opts.MinContentVersion != "" {
			custom = append(custom, directive.WithOptions(
				string(CheckContentVersion),
				ContentVersionOptions{Version: opts.MinContentVersion},
			))
		}
	}

	bare = removeCheck(bare, CheckFreeDiskSpace)
	if opts.CandidateVersion != "" {
		custom = append(custom, directive.WithOptions(
			string(CheckFreeDiskSpace),
			FreeDiskSpaceOptions{ImageVersion: opts.CandidateVersion},
		))
	} else {
		bare = append(bare, CheckFreeDiskSpace)
	}

	if containsCheck(bare, CheckPlanesClockSync) {
		bare = removeCheck(bare, CheckPlanesClockSync)
		if opts.DPMPClockDiff != nil && *opts.DPMPClockDiff >= 0 {
			custom = append(custom, directive.WithOptions(
				string(CheckPlanesClockSync),
				PlanesClockSyncOptions{DiffThreshold: *opts.DPMPClockDiff},
			))
		}
	}

	if containsCheck(bare, CheckIPSecTunnelStatus) {
		bare = removeCheck(bare, CheckIPSecTunnelStatus)
		if opts.IPSecTunnelStatus != "" {
			custom = append(custom, directive.WithOptions(
				string(CheckIPSecTunnelStatus),
				IPSecTunnelOptions{TunnelName: opts.IPSecTunnelStatus},
			))
		}
	}

	if containsCheck(bare, CheckSessionExist) {
		bare = removeCheck(bare, CheckSessionExist)
		if opts.SessionExists != "" {
			session, err := ParseSession(opts.SessionExists)
			if err != nil {
				return nil, err
			}
			custom = append(custom, directive.WithOptions(string(CheckSessionExist), session))
		}
	}

	if containsCheck(bare, CheckARPEntryExists) {
		bare = removeCheck(bare, CheckARPEntryExists)
		if opts.ARPEntryExists != "" {
			custom = append(custom, directive.WithOptions(
				string(CheckARPEntryExist),
				ARPEntryOptions{IP: opts.ARPEntryExists},
			))
		}
	}

	directives := make([]directive.Directive, 0, len(bare)+len(custom))
	for _, check := range bare {
		directives = append(directives, directive.FromName(string(check)))
	}
	return append(directives, custom...), nil
}

// resolveCheckList translates the caller's list to evaluator-facing check
// types, or substitutes the defaults when no list was supplied.
func resolveCheckList(checks []string, haEnabled bool) []CheckType {
	names := normalizeList(checks)
	if len(names) == 0 {
		resolved := append([]CheckType{}, defaultReadinessChecks...)
		if haEnabled {
			resolved = append(resolved, CheckHA)
		}
		return resolved
	}

	resolved := make([]CheckType, 0, len(names))
	for _, name := range names {
		resolved = append(resolved, resolveCheckType(name))
	}
	return resolved
}

// validateReadinessOptions fails fast on malformed inputs before any
// directive is built. All problems are reported together.
func validateReadinessOptions(opts ReadinessOptions, checks []CheckType) error {
	var result *multierror.Error

	if opts.ARPEntryExists != "" {
		if err := validateIPv4(opts.ARPEntryExists); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if opts.SessionExists != "" && containsCheck(checks, CheckSessionExist) {
		if _, err := ParseSession(opts.SessionExists); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func containsCheck(checks []CheckType, check CheckType) bool {
	for _, c := range checks {
		if c == check {
			return true
		}
	}
	return false
}

// removeCheck drops every occurrence of check, preserving the order of the
// rest.
func removeCheck(checks []CheckType, check CheckType) []CheckType {
	remaining := make([]CheckType, 0, len(checks))
	for _, c := range checks {
		if c != check {
			remaining = append(remaining, c)
		}
	}
	return remaining
}
