package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DrawsTotal counts successful ledger appends per session.
	DrawsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bingo_draws_total",
		Help: "Numbers appended to the draw ledger.",
	}, []string{"session"})

	// WinnersTotal counts winner registrations per session.
	WinnersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bingo_winners_total",
		Help: "Winner records created.",
	}, []string{"session"})

	// ResetsTotal counts session resets.
	ResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bingo_session_resets_total",
		Help: "Session ledger resets.",
	}, []string{"session"})

	// ConnectedViewers tracks websocket clients on the broadcast hub.
	ConnectedViewers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bingo_connected_viewers",
		Help: "Currently connected websocket viewers.",
	})
)
