// Package bot wires the pure time-clock core to its collaborators: the
// punch store, the injected clock and the optional AI intent classifier.
// Handle turns one inbound message into one reply text; delivering that
// text is the caller's job.
package bot

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmoreira/pontobot/internal/ai"
	"github.com/dmoreira/pontobot/internal/punch"
)

const (
	usageReply = `Comando inválido. Envie "entrada", "saída" ou "relatório" (ex.: relatório últimos 7 dias).`

	// minInterpreterConfidence gates AI-classified intents: below it the
	// bot answers with the usage hint instead of guessing.
	minInterpreterConfidence = 0.7
)

// Store is the event store gateway the handler appends to and queries.
// QueryPunches bounds are inclusive start, exclusive end, ascending time.
type Store interface {
	AppendPunch(ctx context.Context, userID string, kind punch.Kind, occurredAt time.Time) error
	QueryPunches(ctx context.Context, userID string, start, end time.Time) ([]punch.Event, error)
	DeletePunches(ctx context.Context, userID string) (int64, error)
}

type Handler struct {
	store       Store
	loc         *time.Location
	now         func() time.Time
	interpreter ai.Provider
	logger      *slog.Logger
}

func NewHandler(store Store, loc *time.Location, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// SetNow replaces the clock. Tests inject a fixed instant here.
func (h *Handler) SetNow(now func() time.Time) { h.now = now }

// SetInterpreter enables the AI fallback for unrecognized text.
func (h *Handler) SetInterpreter(p ai.Provider) { h.interpreter = p }

// Handle processes one normalized inbound message and returns the reply
// text. An empty reply means a collaborator failed and the message should
// be acknowledged without answering; the failure has already been logged.
func (h *Handler) Handle(ctx context.Context, senderID, text string) string {
	cmd := punch.ParseCommand(text)

	if cmd.Kind == punch.CmdUnknown && h.interpreter != nil {
		if reinterpreted, ok := h.interpret(ctx, text); ok {
			cmd = reinterpreted
		}
	}

	switch cmd.Kind {
	case punch.CmdClockIn:
		return h.clockEvent(ctx, senderID, punch.Entry)
	case punch.CmdClockOut:
		return h.clockEvent(ctx, senderID, punch.Exit)
	case punch.CmdReport:
		return h.report(ctx, senderID, cmd.Params)
	case punch.CmdSeed:
		if err := h.SeedMockData(ctx, senderID); err != nil {
			h.logger.Error("seeding mock data", "user", senderID, "error", err)
			return ""
		}
		return `✅ Dados fictícios gerados! Tente "relatório últimos 7 dias" agora.`
	default:
		return usageReply
	}
}

// clockEvent appends a punch with a server-assigned timestamp. There is no
// validation against prior events: two consecutive entries are accepted,
// and the report pairing policy deals with them.
func (h *Handler) clockEvent(ctx context.Context, senderID string, kind punch.Kind) string {
	now := h.now()
	if err := h.store.AppendPunch(ctx, senderID, kind, now); err != nil {
		h.logger.Error("appending punch", "user", senderID, "kind", kind, "error", err)
		return ""
	}

	h.logger.Info("punch recorded", "user", senderID, "kind", kind)
	localTime := now.In(h.loc).Format("15:04:05")
	return "✅ Ponto de *" + string(kind) + "* registado com sucesso às " + localTime + "!"
}

func (h *Handler) report(ctx context.Context, senderID, params string) string {
	rng, err := punch.ResolveRange(params, h.now(), h.loc)
	if err != nil {
		return "Período inválido: " + err.Error()
	}

	events, err := h.store.QueryPunches(ctx, senderID, rng.Start, rng.End)
	if err != nil {
		h.logger.Error("querying punches", "user", senderID, "error", err)
		return ""
	}

	if len(events) == 0 {
		return punch.NoRecordsMessage
	}

	return punch.BuildReport(events, h.loc).Render(rng)
}

func (h *Handler) interpret(ctx context.Context, text string) (punch.Command, bool) {
	intent, err := h.interpreter.InterpretCommand(ctx, text)
	if err != nil {
		h.logger.Debug("intent classification failed", "error", err)
		return punch.Command{}, false
	}
	if intent == nil || intent.Confidence < minInterpreterConfidence {
		return punch.Command{}, false
	}

	cmd := punch.ParseCommand(intent.Command + " " + intent.Params)
	if cmd.Kind == punch.CmdUnknown {
		return punch.Command{}, false
	}

	h.logger.Info("command resolved by interpreter",
		"command", intent.Command, "params", intent.Params, "confidence", intent.Confidence)
	return cmd, true
}
