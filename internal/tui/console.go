// Package tui is an operator console: it feeds commands through the same
// pipeline the webhook uses, against the local store, echoing the replies
// in the terminal instead of WhatsApp.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ReplyFunc runs one normalized command and returns the reply text. An
// empty reply means a collaborator failed (already logged by the bot).
type ReplyFunc func(ctx context.Context, text string) string

type exchange struct {
	sent  string
	reply string
}

type Console struct {
	input   textinput.Model
	history []exchange
	run     ReplyFunc
	userID  string
}

func NewConsole(userID string, run ReplyFunc) Console {
	ti := textinput.New()
	ti.Placeholder = "entrada, saída ou relatório últimos 7 dias..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return Console{input: ti, run: run, userID: userID}
}

func (c Console) Init() tea.Cmd {
	return textinput.Blink
}

func (c Console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return c, tea.Quit
		case "enter":
			text := strings.ToLower(strings.TrimSpace(c.input.Value()))
			if text == "" {
				return c, nil
			}
			reply := c.run(context.Background(), text)
			c.history = append(c.history, exchange{sent: text, reply: reply})
			c.input.Reset()
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c Console) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pontobot console"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("utilizador: " + c.userID))
	b.WriteString("\n")

	for _, ex := range c.history {
		b.WriteString(sentStyle.Render("> " + ex.sent))
		b.WriteString("\n")
		if ex.reply == "" {
			b.WriteString(errorStyle.Render("(sem resposta; veja os logs)"))
		} else {
			b.WriteString(replyStyle.Render(ex.reply))
		}
		b.WriteString("\n")
	}

	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: enviar • Esc: sair"))

	return b.String()
}
