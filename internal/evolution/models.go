package evolution

// SendTextRequest is the body of POST /message/sendText/{instance}.
type SendTextRequest struct {
	Number  string      `json:"number"`
	Options SendOptions `json:"options"`
	Text    string      `json:"text"`
}

type SendOptions struct {
	Delay    int    `json:"delay"`
	Presence string `json:"presence"`
}

// WebhookEvent is the payload Evolution posts to the bot's webhook. Only
// the fields the bot reads are declared; "messages.upsert" is the only
// event kind it acts on.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  MessageData `json:"data"`
}

type MessageData struct {
	Key     MessageKey `json:"key"`
	Message *Message   `json:"message"`
}

type MessageKey struct {
	RemoteJid string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id"`
}

type Message struct {
	Conversation string `json:"conversation"`
}
