package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	editProposalCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "museum",
		Subsystem: "edits",
		Name:      "proposed_total",
		Help:      "The total number of proposed edits",
	}, []string{"category", "action"})

	editReviewCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "museum",
		Subsystem: "edits",
		Name:      "reviewed_total",
		Help:      "The total number of reviewed edits",
	}, []string{"category", "status"})

	directChangeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "museum",
		Subsystem: "catalog",
		Name:      "direct_changes_total",
		Help:      "The total number of changes applied directly by a curator",
	}, []string{"category", "action"})
)
