package assure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/directive"
)

func TestCompileSnapshotComparisons(t *testing.T) {
	defaultReports := []directive.Directive{
		directive.WithOptions("nics", CountChangeOptions{CountChangeThreshold: 10}),
		directive.WithOptions("routes", PropertyCountOptions{
			Properties:           []string{"!flags", "!age"},
			CountChangeThreshold: 10,
		}),
		directive.WithOptions("license", PropertyOptions{
			Properties: []string{"!serial", "!issued", "!authcode"},
		}),
		directive.WithOptions("arp_table", PropertyCountOptions{
			Properties:           []string{"!ttl"},
			CountChangeThreshold: 10,
		}),
		directive.FromName("content_version"),
		directive.WithOptions("session_stats", SessionStatsOptions{
			Thresholds: []map[string]int{{"num-max": 10}, {"num-tcp": 10}},
		}),
		directive.WithOptions("ip_sec_tunnels", PropertyOptions{
			Properties: []string{"state"},
		}),
	}

	tests := []struct {
		name      string
		list      []string
		threshold *int
		want      []directive.Directive
	}{
		{
			name: "empty list substitutes all default reports",
			want: defaultReports,
		},
		{
			name:      "session stats threshold override applies to both counters",
			list:      []string{"session_stats"},
			threshold: intPtr(25),
			want: []directive.Directive{
				directive.WithOptions("session_stats", SessionStatsOptions{
					Thresholds: []map[string]int{{"num-max": 25}, {"num-tcp": 25}},
				}),
			},
		},
		{
			name:      "zero threshold falls back to the default",
			list:      []string{"session_stats"},
			threshold: intPtr(0),
			want: []directive.Directive{
				directive.WithOptions("session_stats", SessionStatsOptions{
					Thresholds: []map[string]int{{"num-max": 10}, {"num-tcp": 10}},
				}),
			},
		},
		{
			name:      "negative threshold falls back to the default",
			list:      []string{"session_stats"},
			threshold: intPtr(-5),
			want: []directive.Directive{
				directive.WithOptions("session_stats", SessionStatsOptions{
					Thresholds: []map[string]int{{"num-max": 10}, {"num-tcp": 10}},
				}),
			},
		},
		{
			name: "reports come out in canonical order, not caller order",
			list: []string{"bgp_peers", "content_version", "nics"},
			want: []directive.Directive{
				directive.WithOptions("nics", CountChangeOptions{CountChangeThreshold: 10}),
				directive.FromName("content_version"),
				directive.WithOptions("bgp_peers", PropertyOptions{Properties: []string{"status"}}),
			},
		},
		{
			name: "bgp_peers is only compared when requested",
			list: []string{"bgp_peers"},
			want: []directive.Directive{
				directive.WithOptions("bgp_peers", PropertyOptions{Properties: []string{"status"}}),
			},
		},
		{
			name: "unknown areas are not passed through",
			list: []string{"nics", "flux_capacitor"},
			want: []directive.Directive{
				directive.WithOptions("nics", CountChangeOptions{CountChangeThreshold: 10}),
			},
		},
		{
			name: "whitespace-only list behaves like an omitted one",
			list: []string{" ", ""},
			want: defaultReports,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompileSnapshotComparisons(tt.list, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileSnapshotComparisonsIsIdempotent(t *testing.T) {
	list := []string{"routes", "session_stats"}
	first := CompileSnapshotComparisons(list, intPtr(42))
	second := CompileSnapshotComparisons(list, intPtr(42))
	assert.Equal(t, first, second)
}

func TestDefaultSnapshotTypes(t *testing.T) {
	assert.Equal(t, []string{
		"nics",
		"routes",
		"license",
		"arp_table",
		"content_version",
		"session_stats",
		"ip_sec_tunnels",
	}, DefaultSnapshotTypes())
}
