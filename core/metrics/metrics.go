package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counter vectors registered for one namespace.
type Recorder struct {
	transactions       *prometheus.CounterVec
	attributeChanges   *prometheus.CounterVec
	notifications      *prometheus.CounterVec
	reconcileActions   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
}

// New registers the model counters on reg. An empty namespace falls back to
// "nested_models".
func New(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	if namespace == "" {
		namespace = "nested_models"
	}
	namespace = strings.ReplaceAll(namespace, "-", "_")

	r := &Recorder{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Outermost set transactions committed, by model type.",
		}, []string{"type"}),
		attributeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attribute_changes_total",
			Help:      "Attributes whose stored value changed, by model type.",
		}, []string{"type"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Events emitted by models and collections, by event kind.",
		}, []string{"event"}),
		reconcileActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_actions_total",
			Help:      "Collection reconcile actions applied, by action.",
		}, []string{"action"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Set calls rejected by the validation hook, by model type.",
		}, []string{"type"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{
			r.transactions,
			r.attributeChanges,
			r.notifications,
			r.reconcileActions,
			r.validationFailures,
		} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// ObserveTransaction records a committed outermost transaction and the number of
// attributes it changed.
func (r *Recorder) ObserveTransaction(modelType string, changed int) {
	if r == nil {
		return
	}
	r.transactions.WithLabelValues(modelType).Inc()
	if changed > 0 {
		r.attributeChanges.WithLabelValues(modelType).Add(float64(changed))
	}
}

// ObserveNotification records one emitted event. Per-attribute change events
// are folded into the "change:attr" label to keep cardinality bounded.
func (r *Recorder) ObserveNotification(event string) {
	if r == nil {
		return
	}
	if strings.HasPrefix(event, "change:") {
		event = "change:attr"
	}
	r.notifications.WithLabelValues(event).Inc()
}

// ObserveReconcile records a reconcile action.
func (r *Recorder) ObserveReconcile(action string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.reconcileActions.WithLabelValues(action).Add(float64(count))
}

// ObserveValidationFailure records a rejected set.
func (r *Recorder) ObserveValidationFailure(modelType string) {
	if r == nil {
		return
	}
	r.validationFailures.WithLabelValues(modelType).Inc()
}
