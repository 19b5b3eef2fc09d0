package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(activationTotal, activationRateLimited, codesIssuedTotal) }

var activationTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "activation_attempts_total",
		Help: "Activation attempts by outcome (activated/already_active/invalid_code/malformed/error).",
	},
	[]string{"result"},
)

var activationRateLimited = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "activation_rate_limited_total",
		Help: "Activation attempts rejected by the per-user rate limiter.",
	},
)

var codesIssuedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "activation_codes_issued_total",
		Help: "Activation codes issued through the admin panel.",
	},
)

func IncActivation(result string) {
	activationTotal.WithLabelValues(norm(result)).Inc()
}

func IncActivationRateLimited() {
	activationRateLimited.Inc()
}

func AddCodesIssued(n int) {
	codesIssuedTotal.Add(float64(n))
}
