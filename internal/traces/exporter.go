package traces

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
)

var (
	_        trace.SpanExporter = (*Exporter)(nil)
	once     sync.Once
	exporter *Exporter
	printer  = message.NewPrinter(language.English)
)

// GetExporterInstance creates a singleton exporter instance. The span cache
// grows for the lifetime of the process, which is fine for one-shot CLI
// commands.
func GetExporterInstance() *Exporter {
	once.Do(func() {
		exporter = &Exporter{}
	})
	return exporter
}

// Exporter is a trace.SpanExporter that caches spans in memory so a runtime
// summary can be printed after a command finishes.
type Exporter struct {
	spansMu  sync.Mutex
	allSpans []trace.ReadOnlySpan

	stoppedMu sync.RWMutex
	stopped   bool
}

// ExportSpans writes spans to the in-memory cache. This can be called on
// every span.End() at worst.
func (e *Exporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	e.stoppedMu.RLock()
	stopped := e.stopped
	e.stoppedMu.RUnlock()
	if stopped || len(spans) == 0 {
		return nil
	}

	e.spansMu.Lock()
	defer e.spansMu.Unlock()
	e.allSpans = append(e.allSpans, spans...)

	return nil
}

// GetSummary returns the runtime summary of the execution so far. Call this
// after the root span has ended.
func (e *Exporter) GetSummary() string {
	e.spansMu.Lock()
	stubs := tracetest.SpanStubsFromReadOnlySpans(e.allSpans)
	e.spansMu.Unlock()

	if len(stubs) == 0 {
		return ""
	}

	phases := make(map[string]time.Duration)
	totalDuration := time.Duration(0)

	for i := range stubs {
		stub := &stubs[i]
		duration := stub.EndTime.Sub(stub.StartTime)
		if stub.Name == constants.ROOT_SPAN_NAME {
			totalDuration = duration
			continue
		}
		phases[stub.Name] = duration
	}

	keys := make([]string, 0, len(phases))
	padding := 0
	for k := range phases {
		if len(k) > padding {
			padding = len(k)
		}
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(l, r int) bool {
		return phases[keys[l]] > phases[keys[r]]
	})

	sb := strings.Builder{}
	sb.WriteString("========= Execution summary ==========\n")
	for _, name := range keys {
		sb.WriteString(printer.Sprintf("%-*s : %dms\n", padding, name, phases[name]/time.Millisecond))
	}
	sb.WriteString(printer.Sprintf("\nDuration: %dms\n", totalDuration/time.Millisecond))

	return sb.String()
}

// Shutdown stops the exporter and discards cached spans.
func (e *Exporter) Shutdown(ctx context.Context) error {
	e.stoppedMu.Lock()
	e.stopped = true
	e.stoppedMu.Unlock()

	e.Reset()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}

func (e *Exporter) Reset() {
	e.spansMu.Lock()
	e.allSpans = e.allSpans[:0]
	e.spansMu.Unlock()
}
