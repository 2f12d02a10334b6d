package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmoreira/pontobot/internal/punch"
)

var (
	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pontobot_webhook_events_total",
		Help: "Webhook deliveries received, by gateway event type.",
	}, []string{"event"})

	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pontobot_commands_total",
		Help: "Chat commands processed, by parsed kind.",
	}, []string{"kind"})

	repliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pontobot_replies_total",
		Help: "Outbound replies, by delivery outcome.",
	}, []string{"status"})
)

func commandKindLabel(kind punch.CommandKind) string {
	switch kind {
	case punch.CmdClockIn:
		return "clock_in"
	case punch.CmdClockOut:
		return "clock_out"
	case punch.CmdReport:
		return "report"
	case punch.CmdSeed:
		return "seed"
	default:
		return "unknown"
	}
}
