package websocket

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MovesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "colorwars_moves_total",
			Help: "Moves submitted over WebSocket, by outcome",
		},
		[]string{"outcome"},
	)
	GamesWonTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "colorwars_games_won_total",
			Help: "Games that ended with a winner",
		},
	)
	CascadeFramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "colorwars_cascade_frames_total",
			Help: "Explosion frames fired across all moves",
		},
	)
	ConnectedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "colorwars_connected_clients",
			Help: "Currently connected WebSocket clients",
		},
	)
)

func init() {
	prometheus.MustRegister(MovesTotal)
	prometheus.MustRegister(GamesWonTotal)
	prometheus.MustRegister(CascadeFramesTotal)
	prometheus.MustRegister(ConnectedClients)
}
