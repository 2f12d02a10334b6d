package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmoreira/pontobot/internal/evolution"
	"github.com/dmoreira/pontobot/internal/punch"
)

// handleWebhook processes one Evolution delivery. It always acknowledges
// with 200, whatever happens inside: a non-2xx answer would make the
// gateway redeliver and storm the bot with duplicates.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	var event evolution.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.logger.Warn("discarding undecodable webhook payload", "error", err)
		webhookEventsTotal.WithLabelValues("undecodable").Inc()
		return
	}

	webhookEventsTotal.WithLabelValues(event.Event).Inc()
	if event.Event != "messages.upsert" {
		s.logger.Debug("ignoring webhook event", "event", event.Event)
		return
	}

	key := event.Data.Key
	if event.Data.Message == nil || event.Data.Message.Conversation == "" || key.RemoteJid == "" || key.FromMe {
		s.logger.Debug("ignoring message without usable body or sender",
			"remote_jid", key.RemoteJid, "from_me", key.FromMe)
		return
	}

	number, _, _ := strings.Cut(key.RemoteJid, "@")
	text := strings.ToLower(strings.TrimSpace(event.Data.Message.Conversation))
	commandsTotal.WithLabelValues(commandKindLabel(punch.ParseCommand(text).Kind)).Inc()

	reply := s.bot.Handle(r.Context(), number, text)
	if reply == "" {
		return
	}

	if err := s.sender.SendText(r.Context(), number, reply); err != nil {
		// Logged and swallowed: the sender has its own retries, and a
		// second reply attempt at this layer could double-message.
		s.logger.Error("delivering reply", "number", number, "error", err)
		repliesTotal.WithLabelValues("failed").Inc()
		return
	}

	s.logger.Info("reply delivered", "number", number)
	repliesTotal.WithLabelValues("delivered").Inc()
}
