package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

const (
	namespace = "mockwallet"

	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"

	unsupportedMethod = "unsupported"
)

// Service owns the prometheus registry of the bridge and the wallet collectors.
type Service struct {
	Registry *prometheus.Registry
	Enabled  bool

	requests *prometheus.CounterVec
	events   *prometheus.CounterVec
}

func New(cfg config.Server) (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		Enabled:  cfg.Management.EnableMetrics,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Provider requests by chain family, method and outcome.",
		}, []string{"family", "method", "outcome"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Provider events emitted by chain family and event name.",
		}, []string{"family", "event"}),
	}

	for _, collector := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.requests,
		s.events,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return s, nil
}

// ObserveRequest counts a provider request. Unsupported EVM methods share a
// single label value.
func (s *Service) ObserveRequest(family keystore.ChainFamily, method string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeRejected
		if errors.Is(err, evm.ErrUnsupportedMethod) {
			method = unsupportedMethod
		}
	}

	s.requests.WithLabelValues(family.String(), method, outcome).Inc()
}

// ObserveEvent counts an emitted provider event.
func (s *Service) ObserveEvent(family keystore.ChainFamily, ev events.Event) {
	s.events.WithLabelValues(family.String(), ev.Name().String()).Inc()
}

// RequestCount returns the current value of a request counter.
func (s *Service) RequestCount(family keystore.ChainFamily, method string, outcome string) float64 {
	return counterValue(s.requests.WithLabelValues(family.String(), method, outcome))
}

// EventCount returns the current value of an event counter.
func (s *Service) EventCount(family keystore.ChainFamily, name events.Name) float64 {
	return counterValue(s.events.WithLabelValues(family.String(), name.String()))
}
