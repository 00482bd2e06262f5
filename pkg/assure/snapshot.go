package assure

import "strings"

// SnapshotType is an evaluator-facing snapshot area identifier, used both
// when taking a snapshot and when naming a comparison report.
type SnapshotType string

const (
	SnapshotNICs           SnapshotType = "nics"
	SnapshotRoutes         SnapshotType = "routes"
	SnapshotLicense        SnapshotType = "license"
	SnapshotARPTable       SnapshotType = "arp_table"
	SnapshotContentVersion SnapshotType = "content_version"
	SnapshotSessionStats   SnapshotType = "session_stats"
	SnapshotIPSecTunnels   SnapshotType = "ip_sec_tunnels"
	SnapshotBGPPeers       SnapshotType = "bgp_peers"
)

// defaultSnapshotTypes is the snapshot area list used when the caller
// supplies none. bgp_peers is deliberately absent: it is only compared when
// requested explicitly.
var defaultSnapshotTypes = []SnapshotType{
	SnapshotNICs,
	SnapshotRoutes,
	SnapshotLicense,
	SnapshotARPTable,
	SnapshotContentVersion,
	SnapshotSessionStats,
	SnapshotIPSecTunnels,
}

// DefaultSnapshotTypes returns the snapshot areas captured when no explicit
// list is requested.
func DefaultSnapshotTypes() []string {
	types := make([]string, 0, len(defaultSnapshotTypes))
	for _, t := range defaultSnapshotTypes {
		types = append(types, string(t))
	}
	return types
}

// ResolveSnapshotList returns the caller's snapshot area list, or the
// defaults when the list is empty.
func ResolveSnapshotList(list []string) []string {
	if normalized := normalizeList(list); len(normalized) > 0 {
		return normalized
	}
	return DefaultSnapshotTypes()
}

// normalizeList trims surrounding whitespace and drops empty entries, so a
// caller-supplied "" or ", ," behaves the same as an omitted list.
func normalizeList(list []string) []string {
	normalized := make([]string, 0, len(list))
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
