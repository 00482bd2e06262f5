package panos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHAEnabledFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
		wantErr  bool
	}{
		{
			name: "ha enabled",
			response: `<response status="success">
  <result>
    <enabled>yes</enabled>
    <group>
      <mode>Active-Passive</mode>
    </group>
  </result>
</response>`,
			want: true,
		},
		{
			name:     "ha disabled",
			response: `<response status="success"><result><enabled>no</enabled></result></response>`,
			want:     false,
		},
		{
			name:     "missing enabled element means disabled",
			response: `<response status="success"><result/></response>`,
			want:     false,
		},
		{
			name:     "garbage is an error",
			response: `{"not": "xml"}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := haEnabledFromResponse([]byte(tt.response))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHostname(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "https url", url: "https://panorama.example.com", want: "panorama.example.com"},
		{name: "url with port", url: "https://panorama.example.com:8443", want: "panorama.example.com"},
		{name: "url with path", url: "https://panorama.example.com/api/", want: "panorama.example.com"},
		{name: "bare hostname", url: "panorama.example.com", want: "panorama.example.com"},
		{name: "bare ip", url: "10.1.1.1", want: "10.1.1.1"},
		{name: "empty", url: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHostname(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		wantErr string
	}{
		{
			name:    "nil options",
			opts:    nil,
			wantErr: "options cannot be nil",
		},
		{
			name:    "missing url",
			opts:    &Options{APIKey: "key"},
			wantErr: "device URL is required",
		},
		{
			name:    "missing api key",
			opts:    &Options{URL: "https://panorama.example.com"},
			wantErr: "device API key is required",
		},
		{
			name:    "invalid port",
			opts:    &Options{URL: "https://panorama.example.com", APIKey: "key", Port: "not-a-port"},
			wantErr: "invalid device port",
		},
		{
			name: "valid configuration",
			opts: &Options{URL: "https://panorama.example.com", APIKey: "key", Serial: "0123456789"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "0123456789", client.Serial())
		})
	}
}
