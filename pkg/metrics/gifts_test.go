package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestGiftMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewGiftMetrics(reg)
	metrics.IncClaim("unique", OutcomeClaimed)
	metrics.IncClaim("unique", OutcomeAlreadyClaimed)
	metrics.IncClaim("unlimited", OutcomeClaimed)
	metrics.IncUnclaim("unique")
	metrics.IncClaimsLogFailure()
	metrics.IncClaimsLogFailure()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "gift_claims_total", "outcome", OutcomeAlreadyClaimed); err != nil {
		t.Fatalf("fetch claims: %v", err)
	} else if got != 1 {
		t.Fatalf("expected already_claimed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "gift_unclaims_total", "kind", "unique"); err != nil {
		t.Fatalf("fetch unclaims: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unclaims=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "claims_log_append_failures_total")
	if mf == nil || len(mf.GetMetric()) != 1 || mf.GetMetric()[0].GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 claims log failures, got %v", mf)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	metrics := NewGiftMetrics(nil)
	metrics.IncClaim("", "")
	metrics.IncUnclaim("")
	metrics.IncClaimsLogFailure()

	var nilMetrics *GiftMetrics
	nilMetrics.IncClaim("unique", OutcomeClaimed)

	NewHTTPMetrics(nil).Observe("GET", "/api/gifts", 200, time.Millisecond)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.Observe("POST", "/api/gifts/claim", 409, 120*time.Millisecond)
	metrics.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "409"); err != nil || got != 1 {
		t.Fatalf("expected one 409, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unmatched route to be labelled unknown, got %f err=%v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/gifts/claim"); err != nil || got <= 0 {
		t.Fatalf("expected latency sum > 0, got %f err=%v", got, err)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
