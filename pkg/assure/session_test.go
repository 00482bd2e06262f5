package assure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSession(t *testing.T) {
	tests := []struct {
		name    string
		session string
		want    SessionDescriptor
		wantErr bool
	}{
		{
			name:    "three fields parse into a descriptor",
			session: "10.10.10.10/8.8.8.8/443",
			want: SessionDescriptor{
				Source:      "10.10.10.10",
				Destination: "8.8.8.8",
				DestPort:    "443",
			},
		},
		{
			name:    "two fields are an error",
			session: "10.10.10.10/8.8.8.8",
			wantErr: true,
		},
		{
			name:    "four fields are an error",
			session: "10.10.10.10/8.8.8.8/443/extra",
			wantErr: true,
		},
		{
			name:    "empty string is an error",
			session: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSession(tt.session)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{name: "valid address", addr: "10.0.0.6"},
		{name: "octet out of range", addr: "999.1.1.1", wantErr: true},
		{name: "ipv6 is rejected", addr: "2001:db8::1", wantErr: true},
		{name: "hostname is rejected", addr: "firewall-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIPv4(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
