package assure

// CheckType is an evaluator-facing readiness check identifier. The spellings
// must match the upgrade-assurance evaluator's check types exactly; a
// mismatch is a silent evaluator-side failure, not caught here.
type CheckType string

const (
	CheckPanorama          CheckType = "panorama"
	CheckHA                CheckType = "ha"
	CheckNTPSync           CheckType = "ntp_sync"
	CheckCandidateConfig   CheckType = "candidate_config"
	CheckExpiredLicenses   CheckType = "expired_licenses"
	CheckActiveSupport     CheckType = "active_support"
	CheckContentVersion    CheckType = "content_version"
	CheckFreeDiskSpace     CheckType = "free_disk_space"
	CheckPlanesClockSync   CheckType = "planes_clock_sync"
	CheckIPSecTunnelStatus CheckType = "ip_sec_tunnel_status"
	CheckSessionExist      CheckType = "session_exist"
	CheckARPEntryExists    CheckType = "arp_entry_exists"

	// The evaluator spells the configured form of the ARP check without the
	// trailing "s" of the list identifier.
	CheckARPEntryExist CheckType = "arp_entry_exist"
)

// Alias is a user-facing check name accepted on the command surface that
// differs from its evaluator-facing check type.
type Alias string

const (
	AliasDPMPClockDiff Alias = "dp_mp_clock_diff"
	AliasIPSecTunnel   Alias = "ipsec_tunnel"
	AliasARP           Alias = "arp"
)

// checkAliases is the exhaustive translation table from user-facing aliases
// to evaluator-facing check types.
var checkAliases = map[Alias]CheckType{
	AliasDPMPClockDiff: CheckPlanesClockSync,
	AliasIPSecTunnel:   CheckIPSecTunnelStatus,
	AliasARP:           CheckARPEntryExists,
}

// defaultReadinessChecks is the check list used when the caller supplies
// none. The ha check is appended separately, gated on the device's HA state.
var defaultReadinessChecks = []CheckType{
	CheckPanorama,
	CheckNTPSync,
	CheckCandidateConfig,
	CheckActiveSupport,
}

// resolveCheckType translates a user-facing check name to its
// evaluator-facing type. Names without an alias pass through unchanged.
func resolveCheckType(name string) CheckType {
	if t, ok := checkAliases[Alias(name)]; ok {
		return t
	}
	return CheckType(name)
}

// ContentVersionOptions configures the content_version check.
type ContentVersionOptions struct {
	Version string `json:"version"`
}

// FreeDiskSpaceOptions configures the free_disk_space check against a
// specific target image.
type FreeDiskSpaceOptions struct {
	ImageVersion string `json:"image_version"`
}

// PlanesClockSyncOptions configures the allowed drift between the data
// plane and management plane clocks.
type PlanesClockSyncOptions struct {
	DiffThreshold int `json:"diff_threshold"`
}

// IPSecTunnelOptions configures the ip_sec_tunnel_status check for a single
// named tunnel.
type IPSecTunnelOptions struct {
	TunnelName string `json:"tunnel_name"`
}

// ARPEntryOptions configures the arp_entry_exist check.
type ARPEntryOptions struct {
	IP string `json:"ip"`
}
