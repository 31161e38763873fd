package ontology

import "time"

// InterfaceType classifies who sits on the other side of an interface.
type InterfaceType string

const (
	InterfaceHuman       InterfaceType = "human"
	InterfaceAgent       InterfaceType = "agent"
	InterfaceSystem      InterfaceType = "system"
	InterfaceEnvironment InterfaceType = "environment"
)

func (t InterfaceType) Valid() bool {
	switch t {
	case InterfaceHuman, InterfaceAgent, InterfaceSystem, InterfaceEnvironment:
		return true
	}
	return false
}

// CommunicationProtocol names the transport an interface speaks.
type CommunicationProtocol string

const (
	ProtocolHTTP         CommunicationProtocol = "http"
	ProtocolWebSocket    CommunicationProtocol = "websocket"
	ProtocolGRPC         CommunicationProtocol = "grpc"
	ProtocolMessageQueue CommunicationProtocol = "message-queue"
	ProtocolSharedMemory CommunicationProtocol = "shared-memory"
	ProtocolCustom       CommunicationProtocol = "custom"
)

func (p CommunicationProtocol) Valid() bool {
	switch p {
	case ProtocolHTTP, ProtocolWebSocket, ProtocolGRPC, ProtocolMessageQueue,
		ProtocolSharedMemory, ProtocolCustom:
		return true
	}
	return false
}

// MessageType classifies a message's communicative intent.
type MessageType string

const (
	MessageRequest        MessageType = "request"
	MessageResponse       MessageType = "response"
	MessageNotification   MessageType = "notification"
	MessageCommand        MessageType = "command"
	MessageQuery          MessageType = "query"
	MessageUpdate         MessageType = "update"
	MessageError          MessageType = "error"
	MessageAcknowledgment MessageType = "acknowledgment"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageRequest, MessageResponse, MessageNotification, MessageCommand,
		MessageQuery, MessageUpdate, MessageError, MessageAcknowledgment:
		return true
	}
	return false
}

// Interface is one channel the agent communicates over.
type Interface struct {
	ID                     string                `json:"id"`
	Name                   string                `json:"name"`
	Type                   InterfaceType         `json:"type"`
	Protocol               CommunicationProtocol `json:"protocol"`
	Endpoint               string                `json:"endpoint"`
	Capabilities           []string              `json:"capabilities,omitempty"`
	AuthenticationRequired bool                  `json:"authentication_required"`
	RateLimits             map[string]int        `json:"rate_limits,omitempty"`
	Active                 bool                  `json:"active"`

	Extra map[string]any `json:"-"`
}

func (i Interface) MarshalJSON() ([]byte, error) {
	type alias Interface
	return marshalWithExtra(alias(i), i.Extra)
}

func (i *Interface) UnmarshalJSON(data []byte) error {
	type alias Interface
	v := alias{Active: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*i = Interface(v)
	i.Extra = extra
	return i.Validate()
}

func (i *Interface) Validate() error {
	if i.ID == "" {
		return requiredErr("Interface", "id")
	}
	if i.Name == "" {
		return requiredErr("Interface", "name")
	}
	if !i.Type.Valid() {
		return enumErr("Interface", "type", string(i.Type))
	}
	if !i.Protocol.Valid() {
		return enumErr("Interface", "protocol", string(i.Protocol))
	}
	return nil
}

// Message is one message exchanged during a run. Entities reference each
// other by id; a message is owned by the snapshot that nests it.
type Message struct {
	ID            string         `json:"id"`
	Type          MessageType    `json:"type"`
	SenderID      string         `json:"sender_id"`
	RecipientID   string         `json:"recipient_id"`
	InterfaceID   string         `json:"interface_id"`
	Content       any            `json:"content"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	ReplyTo       string         `json:"reply_to,omitempty"`
	ExpiresAt     *time.Time     `json:"expires_at"`

	Extra map[string]any `json:"-"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return marshalWithExtra(alias(m), m.Extra)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*m = Message(v)
	m.Extra = extra
	return m.Validate()
}

func (m *Message) Validate() error {
	if m.ID == "" {
		return requiredErr("Message", "id")
	}
	if !m.Type.Valid() {
		return enumErr("Message", "type", string(m.Type))
	}
	if m.SenderID == "" {
		return requiredErr("Message", "sender_id")
	}
	if m.RecipientID == "" {
		return requiredErr("Message", "recipient_id")
	}
	if m.InterfaceID == "" {
		return requiredErr("Message", "interface_id")
	}
	if m.Timestamp.IsZero() {
		return requiredErr("Message", "timestamp")
	}
	return nil
}

// Conversation is a session of related messages.
type Conversation struct {
	ID             string         `json:"id"`
	ParticipantIDs []string       `json:"participant_ids"`
	InterfaceIDs   []string       `json:"interface_ids"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time"`
	MessageCount   int            `json:"message_count"`
	Context        map[string]any `json:"context,omitempty"`
	Status         string         `json:"status"`
	Topic          string         `json:"topic,omitempty"`

	Extra map[string]any `json:"-"`
}

func (c Conversation) MarshalJSON() ([]byte, error) {
	type alias Conversation
	return marshalWithExtra(alias(c), c.Extra)
}

func (c *Conversation) UnmarshalJSON(data []byte) error {
	type alias Conversation
	v := alias{Status: "active"}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*c = Conversation(v)
	c.Extra = extra
	return c.Validate()
}

func (c *Conversation) Validate() error {
	if c.ID == "" {
		return requiredErr("Conversation", "id")
	}
	if c.StartTime.IsZero() {
		return requiredErr("Conversation", "start_time")
	}
	return nil
}

// InteractionMetrics summarizes traffic over one interface.
type InteractionMetrics struct {
	ID                  string  `json:"id"`
	InterfaceID         string  `json:"interface_id"`
	TimeWindow          float64 `json:"time_window"`
	MessageCount        int     `json:"message_count"`
	ErrorCount          int     `json:"error_count"`
	AverageLatency      float64 `json:"average_latency"`
	Throughput          float64 `json:"throughput"`
	SuccessRate         float64 `json:"success_rate"`
	ActiveConversations int     `json:"active_conversations"`

	Extra map[string]any `json:"-"`
}

func (m InteractionMetrics) MarshalJSON() ([]byte, error) {
	type alias InteractionMetrics
	return marshalWithExtra(alias(m), m.Extra)
}

func (m *InteractionMetrics) UnmarshalJSON(data []byte) error {
	type alias InteractionMetrics
	v := alias{SuccessRate: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*m = InteractionMetrics(v)
	m.Extra = extra
	return m.Validate()
}

func (m *InteractionMetrics) Validate() error {
	if m.ID == "" {
		return requiredErr("InteractionMetrics", "id")
	}
	if m.InterfaceID == "" {
		return requiredErr("InteractionMetrics", "interface_id")
	}
	return nil
}

// InteractionSnapshot is the interaction layer at one point in time.
type InteractionSnapshot struct {
	Timestamp            time.Time            `json:"timestamp"`
	ActiveInterfaces     []Interface          `json:"active_interfaces,omitempty"`
	OngoingConversations []Conversation       `json:"ongoing_conversations,omitempty"`
	RecentMessages       []Message            `json:"recent_messages,omitempty"`
	InterfaceMetrics     []InteractionMetrics `json:"interface_metrics,omitempty"`
	PendingMessages      int                  `json:"pending_messages"`

	Extra map[string]any `json:"-"`
}

func (s InteractionSnapshot) MarshalJSON() ([]byte, error) {
	type alias InteractionSnapshot
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *InteractionSnapshot) UnmarshalJSON(data []byte) error {
	type alias InteractionSnapshot
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = InteractionSnapshot(v)
	s.Extra = extra
	return s.Validate()
}

func (s *InteractionSnapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("InteractionSnapshot", "timestamp")
	}
	return nil
}
