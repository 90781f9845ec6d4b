package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wagerTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wager_rounds_total",
			Help: "Total wager rounds by game and result",
		},
		[]string{"game", "result"},
	)

	wagerStaked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wager_staked_amount_total",
			Help: "Total amount debited as stakes by game",
		},
		[]string{"game"},
	)

	wagerPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wager_payout_amount_total",
			Help: "Total amount credited as payouts by game",
		},
		[]string{"game"},
	)
)

// RecordStake records an accepted stake debit for a game.
func RecordStake(game string, amount int64) {
	wagerStaked.WithLabelValues(game).Add(float64(amount))
}

// RecordSettlement records a settled round. result should be "win", "push"
// or "loss".
func RecordSettlement(game, result string, payout int64) {
	wagerTotal.WithLabelValues(game, result).Inc()
	if payout > 0 {
		wagerPaid.WithLabelValues(game).Add(float64(payout))
	}
}
