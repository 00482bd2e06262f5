package assure

import (
	"net"
	"strings"

	"github.com/pkg/errors"
)

// SessionDescriptor identifies a single session expected to be present on
// the device. It doubles as the option payload of the session_exist check.
type SessionDescriptor struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	DestPort    string `json:"dest_port"`
}

// ParseSession parses a slash-delimited "source/destination/port" string.
// Anything other than exactly three fields is an input error.
func ParseSession(session string) (SessionDescriptor, error) {
	parts := strings.Split(session, "/")
	if len(parts) != 3 {
		return SessionDescriptor{}, errors.Errorf(
			"%s is not a valid session string. Must be 'source/destination/port'.", session)
	}

	return SessionDescriptor{
		Source:      parts[0],
		Destination: parts[1],
		DestPort:    parts[2],
	}, nil
}

// validateIPv4 rejects anything that is not a syntactically valid IPv4
// address.
func validateIPv4(addr string) error {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return errors.Errorf("%s is not a valid IPv4 address.", addr)
	}
	return nil
}
