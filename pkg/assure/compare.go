package assure

import (
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/directive"
)

const (
	// defaultCountChangeThreshold is the tolerated percentage of change in
	// entry counts between two snapshots.
	defaultCountChangeThreshold = 10

	// defaultSessionStatsThreshold is the tolerated percentage of change in
	// each compared session counter.
	defaultSessionStatsThreshold = 10
)

// CountChangeOptions tolerates a bounded change in entry counts.
type CountChangeOptions struct {
	CountChangeThreshold int `json:"count_change_threshold"`
}

// PropertyOptions restricts a comparison to a property set. A leading "!"
// excludes the property from the diff.
type PropertyOptions struct {
	Properties []string `json:"properties"`
}

// PropertyCountOptions combines a property filter with a count-change
// tolerance.
type PropertyCountOptions struct {
	Properties           []string `json:"properties"`
	CountChangeThreshold int      `json:"count_change_threshold"`
}

// SessionStatsOptions carries one threshold entry per compared session
// counter.
type SessionStatsOptions struct {
	Thresholds []map[string]int `json:"thresholds"`
}

// CompileSnapshotComparisons produces the ordered comparison directive list
// for two snapshots. Each requested snapshot area is emitted exactly once,
// in a fixed canonical order with hardcoded tolerances; the caller's list
// only decides membership. Unknown areas are not passed through.
//
// sessionStatsThreshold overrides the tolerated session counter change when
// it is a positive integer; anything else falls back to the default.
func CompileSnapshotComparisons(list []string, sessionStatsThreshold *int) []directive.Directive {
	requested := map[SnapshotType]bool{}
	for _, item := range ResolveSnapshotList(list) {
		requested[SnapshotType(item)] = true
	}

	var reports []directive.Directive

	if requested[SnapshotNICs] {
		reports = append(reports, directive.WithOptions(string(SnapshotNICs),
			CountChangeOptions{CountChangeThreshold: defaultCountChangeThreshold}))
	}

	if requested[SnapshotRoutes] {
		reports = append(reports, directive.WithOptions(string(SnapshotRoutes),
			PropertyCountOptions{
				Properties:           []string{"!flags", "!age"},
				CountChangeThreshold: defaultCountChangeThreshold,
			}))
	}

	if requested[SnapshotLicense] {
		reports = append(reports, directive.WithOptions(string(SnapshotLicense),
			PropertyOptions{Properties: []string{"!serial", "!issued", "!authcode"}}))
	}

	if requested[SnapshotARPTable] {
		reports = append(reports, directive.WithOptions(string(SnapshotARPTable),
			PropertyCountOptions{
				Properties:           []string{"!ttl"},
				CountChangeThreshold: defaultCountChangeThreshold,
			}))
	}

	if requested[SnapshotContentVersion] {
		reports = append(reports, directive.FromName(string(SnapshotContentVersion)))
	}

	if requested[SnapshotSessionStats] {
		threshold := defaultSessionStatsThreshold
		if sessionStatsThreshold != nil && *sessionStatsThreshold > 0 {
			threshold = *sessionStatsThreshold
		}
		reports = append(reports, directive.WithOptions(string(SnapshotSessionStats),
			SessionStatsOptions{
				Thresholds: []map[string]int{
					{"num-max": threshold},
					{"num-tcp": threshold},
				},
			}))
	}

	if requested[SnapshotIPSecTunnels] {
		reports = append(reports, directive.WithOptions(string(SnapshotIPSecTunnels),
			PropertyOptions{Properties: []string{"state"}}))
	}

	if requested[SnapshotBGPPeers] {
		reports = append(reports, directive.WithOptions(string(SnapshotBGPPeers),
			PropertyOptions{Properties: []string{"status"}}))
	}

	return reports
}
