package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "search_pdb_structures",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "search_pdb_structures",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordRequest(tt.tool, tt.duration, tt.success)

			counter, err := RequestsTotal.GetMetricWithLabelValues(tt.tool, tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}
			if getCounterValue(t, counter) < 1 {
				t.Error("expected counter to be incremented")
			}
		})
	}
}

func TestRecordGuardedCall(t *testing.T) {
	for _, status := range []string{"ok", "error", "timeout"} {
		t.Run(status, func(t *testing.T) {
			counter, err := GuardedCallsTotal.GetMetricWithLabelValues("pdb", "search", status)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}
			before := getCounterValue(t, counter)

			RecordGuardedCall("pdb", "search", status, 0.2)

			if got := getCounterValue(t, counter); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name      string
		action    string
		duration  float64
		success   bool
		errorCode string
	}{
		{
			name:     "successful API call",
			action:   "GET /core/entry",
			duration: 0.1,
			success:  true,
		},
		{
			name:      "failed API call with error code",
			action:    "POST /query",
			duration:  0.5,
			success:   false,
			errorCode: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPICall("pdb", tt.action, tt.duration, tt.success, tt.errorCode)

			status := "success"
			if !tt.success {
				status = "error"
			}
			counter, err := BackendAPIRequestsTotal.GetMetricWithLabelValues("pdb", tt.action, status)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}
			if getCounterValue(t, counter) < 1 {
				t.Error("expected counter to be incremented")
			}

			if tt.errorCode != "" {
				errCounter, err := BackendAPIErrors.GetMetricWithLabelValues("pdb", tt.action, tt.errorCode)
				if err != nil {
					t.Fatalf("failed to get error metric: %v", err)
				}
				if getCounterValue(t, errCounter) < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestRecordDroppedFilter(t *testing.T) {
	counter, err := FiltersDropped.GetMetricWithLabelValues("pdb", "rcsb_entry_info.resolution_combined")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	before := getCounterValue(t, counter)

	RecordDroppedFilter("pdb", "rcsb_entry_info.resolution_combined")

	if got := getCounterValue(t, counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		GuardedCallsTotal,
		GuardedCallDuration,
		GuardSlotsInUse,
		BackendAPILatency,
		BackendAPIRequestsTotal,
		BackendAPIErrors,
		FiltersDropped,
		RateLimitRejections,
		PanicsRecovered,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		BinaryPayloadSize,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "chemdata_mcp" {
		t.Errorf("expected namespace 'chemdata_mcp', got '%s'", Namespace)
	}
}

// Helper to get counter value
func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
