package constants

import "time"

const (
	// LIB_TRACER_NAME is the tracer name used for all spans emitted by this
	// library.
	LIB_TRACER_NAME = "github.com/allrob23/xsoar-panos-upgrade-automation"
	// ROOT_SPAN_NAME is the name of the root span of a CLI invocation.
	ROOT_SPAN_NAME = "panos-assurance"
	// DEFAULT_CLIENT_USER_AGENT identifies this tool to the upgrade-assurance
	// evaluator service.
	DEFAULT_CLIENT_USER_AGENT = "PanosAssurance"
	// DEFAULT_EVALUATOR_TIMEOUT is the default timeout for a single
	// evaluator round-trip. Snapshots of large routing tables can be slow.
	DEFAULT_EVALUATOR_TIMEOUT = 5 * time.Minute
	// DEFAULT_DEVICE_PORT is the management-plane port used when none is
	// configured.
	DEFAULT_DEVICE_PORT = "443"
	// DEFAULT_SNAPSHOT_NAME is the artifact name used when the caller does
	// not name a snapshot.
	DEFAULT_SNAPSHOT_NAME = "fw_snapshot"
)
