package authgate

import "sync/atomic"

// MetricID defines a public type used by authgate APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricRegisterSuccess is an exported constant or variable used by the authentication engine.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterFailure is an exported constant or variable used by the authentication engine.
	MetricRegisterFailure
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure
	// MetricVerifyConfirmSuccess is an exported constant or variable used by the authentication engine.
	MetricVerifyConfirmSuccess
	// MetricVerifyConfirmFailure is an exported constant or variable used by the authentication engine.
	MetricVerifyConfirmFailure
	// MetricResetRequest is an exported constant or variable used by the authentication engine.
	MetricResetRequest
	// MetricResetCompleteSuccess is an exported constant or variable used by the authentication engine.
	MetricResetCompleteSuccess
	// MetricResetCompleteFailure is an exported constant or variable used by the authentication engine.
	MetricResetCompleteFailure
	// MetricTokenValidateSuccess is an exported constant or variable used by the authentication engine.
	MetricTokenValidateSuccess
	// MetricTokenValidateFailure is an exported constant or variable used by the authentication engine.
	MetricTokenValidateFailure

	metricCount
)

type metricSet struct {
	counters [metricCount]atomic.Uint64
}

func (m *metricSet) inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

func (m *metricSet) get(id MetricID) uint64 {
	if m == nil || id >= metricCount {
		return 0
	}
	return m.counters[id].Load()
}

// MetricsSnapshot is a point-in-time copy of the engine counters.
type MetricsSnapshot struct {
	RegisterSuccess      uint64
	RegisterFailure      uint64
	LoginSuccess         uint64
	LoginFailure         uint64
	VerifyConfirmSuccess uint64
	VerifyConfirmFailure uint64
	ResetRequest         uint64
	ResetCompleteSuccess uint64
	ResetCompleteFailure uint64
	TokenValidateSuccess uint64
	TokenValidateFailure uint64
}

func (m *metricSet) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RegisterSuccess:      m.get(MetricRegisterSuccess),
		RegisterFailure:      m.get(MetricRegisterFailure),
		LoginSuccess:         m.get(MetricLoginSuccess),
		LoginFailure:         m.get(MetricLoginFailure),
		VerifyConfirmSuccess: m.get(MetricVerifyConfirmSuccess),
		VerifyConfirmFailure: m.get(MetricVerifyConfirmFailure),
		ResetRequest:         m.get(MetricResetRequest),
		ResetCompleteSuccess: m.get(MetricResetCompleteSuccess),
		ResetCompleteFailure: m.get(MetricResetCompleteFailure),
		TokenValidateSuccess: m.get(MetricTokenValidateSuccess),
		TokenValidateFailure: m.get(MetricTokenValidateFailure),
	}
}
