package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nicobot_messages_processed",
	Help: "Number of inbound messages processed, by verdict and reason",
}, []string{"verdict", "reason"})

var processDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "nicobot_message_duration_sec",
	Help: "Total duration of moderation pipeline processing",
}, []string{"verdict"})

var permissionLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nicobot_permission_lookups",
	Help: "Permission cache lookups, by outcome (hit, miss, error)",
}, []string{"outcome"})

var actionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nicobot_action_failures",
	Help: "Number of failed outbound platform or model calls",
}, []string{"action"})
