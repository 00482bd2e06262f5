// Package panos is the thin management-plane glue for this tool: it builds
// the device handle the commands operate on and answers the two questions
// this repo needs from a live device, connectivity and HA state. Everything
// else about the device is owned by the upgrade-assurance evaluator.
package panos

import (
	"context"
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaloAltoNetworks/pango"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
)

// Options configures the device client.
type Options struct {
	// URL is the Panorama (or firewall) management URL. Only the hostname
	// part is used.
	URL    string
	APIKey string
	// Port is the management-plane port, "443" when empty.
	Port string
	// Serial selects a managed firewall behind Panorama. Requests are
	// proxied to it via the target parameter.
	Serial string
}

// Client wraps a pango firewall handle targeted at a single device.
type Client struct {
	fw     *pango.Firewall
	serial string
}

// NewClient builds a device client. No network traffic happens here;
// Initialize performs the first round-trip.
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		return nil, errors.New("options cannot be nil")
	}
	if opts.URL == "" {
		return nil, errors.New("device URL is required")
	}
	if opts.APIKey == "" {
		return nil, errors.New("device API key is required")
	}

	hostname, err := parseHostname(opts.URL)
	if err != nil {
		return nil, err
	}

	port := opts.Port
	if port == "" {
		port = constants.DEFAULT_DEVICE_PORT
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid device port %q", port)
	}

	fw := &pango.Firewall{
		Client: pango.Client{
			Hostname: hostname,
			ApiKey:   opts.APIKey,
			Port:     uint(portNum),
			Target:   opts.Serial,
			Logging:  pango.LogQuiet,
		},
	}

	return &Client{fw: fw, serial: opts.Serial}, nil
}

// Serial returns the serial number of the targeted firewall.
func (c *Client) Serial() string {
	return c.serial
}

// Initialize performs the first management-plane round-trip and verifies
// the API key works.
func (c *Client) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.fw.Initialize(); err != nil {
		return errors.Wrap(err, "failed to connect to device management plane")
	}
	klog.V(2).Infof("connected to %s", c.fw.Hostname)
	return nil
}

// CheckConnectivity issues a harmless op command to prove the device is
// reachable and the credentials are valid.
func (c *Client) CheckConnectivity(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.fw.Op("<show><system><info/></system></show>", "", nil, nil); err != nil {
		return errors.Wrap(err, "failed to reach device")
	}
	return nil
}

// HAEnabled reports whether high availability is configured on the device.
// It gates the inclusion of the ha readiness check in the default list.
func (c *Client) HAEnabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	response, err := c.fw.Op("<show><high-availability><state/></high-availability></show>", "", nil, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to read HA state")
	}

	enabled, err := haEnabledFromResponse(response)
	if err != nil {
		return false, err
	}

	klog.V(2).Infof("HA enabled on %s: %t", c.serial, enabled)
	return enabled, nil
}

type haStateResponse struct {
	XMLName xml.Name `xml:"response"`
	Enabled string   `xml:"result>enabled"`
}

func haEnabledFromResponse(response []byte) (bool, error) {
	var state haStateResponse
	if err := xml.Unmarshal(response, &state); err != nil {
		return false, errors.Wrap(err, "failed to parse HA state response")
	}
	return state.Enabled == "yes", nil
}

// parseHostname extracts the hostname from a management URL. A bare
// hostname without a scheme is accepted as-is.
func parseHostname(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid device URL %q", raw)
	}

	if u.Hostname() != "" {
		return u.Hostname(), nil
	}

	// url.Parse puts scheme-less input in the path component.
	host := strings.TrimSuffix(strings.TrimSpace(u.Path), "/")
	if host == "" {
		return "", errors.Errorf("cannot determine hostname from device URL %q", raw)
	}
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host, nil
}
