package punch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{"clock in", "entrada", Command{Kind: CmdClockIn}},
		{"clock out", "saída", Command{Kind: CmdClockOut}},
		{"clock in with padding", "  entrada  ", Command{Kind: CmdClockIn}},
		{"clock in with trailing token", "entrada agora", Command{Kind: CmdUnknown}},
		{"bare report", "relatório", Command{Kind: CmdReport}},
		{"report with range", "relatório últimos 7 dias", Command{Kind: CmdReport, Params: "últimos 7 dias"}},
		{"report with explicit span", "relatório 01/06/2025 até 05/06/2025", Command{Kind: CmdReport, Params: "01/06/2025 até 05/06/2025"}},
		{"report params are re-trimmed", "relatório   ontem ", Command{Kind: CmdReport, Params: "ontem"}},
		{"report token must be whole", "relatóriox", Command{Kind: CmdUnknown}},
		{"seed", "gerardadosficticios", Command{Kind: CmdSeed}},
		{"empty", "", Command{Kind: CmdUnknown}},
		{"whitespace only", "   ", Command{Kind: CmdUnknown}},
		{"unrelated text", "bom dia", Command{Kind: CmdUnknown}},
		{"unaccented exit is not a punch", "saida", Command{Kind: CmdUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text))
		})
	}
}
