package assure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/directive"
)

func intPtr(i int) *int {
	return &i
}

func TestCompileReadinessChecks(t *testing.T) {
	tests := []struct {
		name    string
		opts    ReadinessOptions
		want    []directive.Directive
		wantErr string
	}{
		{
			name: "empty check list substitutes defaults",
			opts: ReadinessOptions{},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("ntp_sync"),
				directive.FromName("candidate_config"),
				directive.FromName("active_support"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "ha check appended when ha is enabled",
			opts: ReadinessOptions{HAEnabled: true},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("ntp_sync"),
				directive.FromName("candidate_config"),
				directive.FromName("active_support"),
				directive.FromName("ha"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "ha state does not matter for an explicit list",
			opts: ReadinessOptions{Checks: []string{"panorama"}, HAEnabled: true},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "content_version becomes parameterized when a minimum is given",
			opts: ReadinessOptions{
				Checks:            []string{"panorama", "content_version"},
				MinContentVersion: "8421-7321",
			},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
				directive.WithOptions("content_version", ContentVersionOptions{Version: "8421-7321"}),
			},
		},
		{
			name: "content_version is dropped without a minimum",
			opts: ReadinessOptions{Checks: []string{"panorama", "content_version"}},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "candidate version replaces the bare disk space check",
			opts: ReadinessOptions{CandidateVersion: "10.2.3"},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("ntp_sync"),
				directive.FromName("candidate_config"),
				directive.FromName("active_support"),
				directive.WithOptions("free_disk_space", FreeDiskSpaceOptions{ImageVersion: "10.2.3"}),
			},
		},
		{
			name: "requesting free_disk_space never duplicates it",
			opts: ReadinessOptions{Checks: []string{"free_disk_space", "panorama"}},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "dp_mp_clock_diff alias with a threshold",
			opts: ReadinessOptions{
				Checks:        []string{"dp_mp_clock_diff"},
				DPMPClockDiff: intPtr(30),
			},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
				directive.WithOptions("planes_clock_sync", PlanesClockSyncOptions{DiffThreshold: 30}),
			},
		},
		{
			name: "zero clock drift is a valid threshold",
			opts: ReadinessOptions{
				Checks:        []string{"planes_clock_sync"},
				DPMPClockDiff: intPtr(0),
			},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
				directive.WithOptions("planes_clock_sync", PlanesClockSyncOptions{DiffThreshold: 0}),
			},
		},
		{
			name: "negative clock drift drops the check",
			opts: ReadinessOptions{
				Checks:        []string{"planes_clock_sync", "panorama"},
				DPMPClockDiff: intPtr(-1),
			},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "planes_clock_sync without a threshold is dropped",
			opts: ReadinessOptions{Checks: []string{"planes_clock_sync", "panorama"}},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "ipsec_tunnel alias with a tunnel name",
			opts: ReadinessOptions{
				Checks:            []string{"ipsec_tunnel"},
				IPSecTunnelStatus: "ipsec-tun-1",
			},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
				directive.WithOptions("ip_sec_tunnel_status", IPSecTunnelOptions{TunnelName: "ipsec-tun-1"}),
			},
		},
		{
			name: "ip_sec_tunnel_status without a tunnel name is dropped",
			opts: ReadinessOptions{Checks: []string{"ip_sec_tunnel_status"}},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "session_exist with a session descriptor",
			opts: ReadinessOptions{
				Checks:        []string{"session_exist"},
				SessionExists: "10.10.10.10/8.8.8.8/443",
			},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
				directive.WithOptions("session_exist", SessionDescriptor{
					Source:      "10.10.10.10",
					Destination: "8.8.8.8",
					DestPort:    "443",
				}),
			},
		},
		{
			name: "malformed session string fails before any directive is built",
			opts: ReadinessOptions{
				Checks:        []string{"session_exist"},
				SessionExists: "10.10.10.10/8.8.8.8",
			},
			wantErr: "10.10.10.10/8.8.8.8 is not a valid session string",
		},
		{
			name: "arp alias with a valid address",
			opts: ReadinessOptions{
				Checks:         []string{"arp"},
				ARPEntryExists: "10.0.0.6",
			},
			want: []directive.Directive{
				directive.FromName("free_disk_space"),
				directive.WithOptions("arp_entry_exist", ARPEntryOptions{IP: "10.0.0.6"}),
			},
		},
		{
			name: "invalid arp address is rejected",
			opts: ReadinessOptions{
				Checks:         []string{"arp"},
				ARPEntryExists: "999.1.1.1",
			},
			wantErr: "999.1.1.1 is not a valid IPv4 address",
		},
		{
			name: "invalid arp address is rejected even without the check",
			opts: ReadinessOptions{
				Checks:         []string{"panorama"},
				ARPEntryExists: "not-an-ip",
			},
			wantErr: "not-an-ip is not a valid IPv4 address",
		},
		{
			name: "arp_entry_exists without an address is dropped",
			opts: ReadinessOptions{Checks: []string{"arp_entry_exists", "ntp_sync"}},
			want: []directive.Directive{
				directive.FromName("ntp_sync"),
				directive.FromName("free_disk_space"),
			},
		},
		{
			name: "list entries are trimmed and empties ignored",
			opts: ReadinessOptions{Checks: []string{" panorama ", "", "ntp_sync"}},
			want: []directive.Directive{
				directive.FromName("panorama"),
				directive.FromName("ntp_sync"),
				directive.FromName("free_disk_space"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileReadinessChecks(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileReadinessChecksValidationAggregatesErrors(t *testing.T) {
	_, err := CompileReadinessChecks(ReadinessOptions{
		Checks:         []string{"session_exist", "arp"},
		SessionExists:  "no-slashes-here",
		ARPEntryExists: "999.1.1.1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "999.1.1.1 is not a valid IPv4 address")
	assert.Contains(t, err.Error(), "no-slashes-here is not a valid session string")
}

func TestCompileReadinessChecksIsIdempotent(t *testing.T) {
	opts := ReadinessOptions{
		Checks:            []string{"content_version", "ipsec_tunnel", "panorama"},
		MinContentVersion: "8421-7321",
		IPSecTunnelStatus: "tunnel-7",
		CandidateVersion:  "10.2.3",
	}

	first, err := CompileReadinessChecks(opts)
	require.NoError(t, err)
	second, err := CompileReadinessChecks(opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
