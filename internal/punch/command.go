package punch

import "strings"

// CommandKind tags a parsed chat command.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdClockIn
	CmdClockOut
	CmdReport
	CmdSeed
)

// Command is the structured form of an inbound chat message. Params carries
// the remainder after the "relatório" token, trimmed, possibly empty.
type Command struct {
	Kind   CommandKind
	Params string
}

// ParseCommand turns normalized (lowercased) message text into a Command.
// The webhook layer already lowercases and trims; the parser re-trims so it
// stays safe to call with raw text. Anything that is not exactly "entrada"
// or "saída", and does not start with the token "relatório", is Unknown.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)

	switch text {
	case "entrada":
		return Command{Kind: CmdClockIn}
	case "saída":
		return Command{Kind: CmdClockOut}
	case "gerardadosficticios":
		return Command{Kind: CmdSeed}
	}

	fields := strings.Fields(text)
	if len(fields) > 0 && fields[0] == "relatório" {
		return Command{Kind: CmdReport, Params: strings.Join(fields[1:], " ")}
	}

	return Command{Kind: CmdUnknown}
}
