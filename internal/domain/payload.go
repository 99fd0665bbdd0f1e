package domain

// ChatCreatedPayload is the payload for chat_created event.
type ChatCreatedPayload struct {
	IsGroup      bool     `json:"is_group"`
	Name         string   `json:"name,omitempty"`
	Participants []string `json:"participants"`
}

// ChatRenamedPayload is the payload for chat_renamed event.
type ChatRenamedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// MemberPayload is the payload for member_added, member_removed and admin_cleared events.
type MemberPayload struct {
	UserID string `json:"user_id"`
}

// MessageSentPayload is the payload for message_sent event.
type MessageSentPayload struct {
	MessageID string `json:"message_id"`
	// PointerUpdated is false when the latest message pointer could not be advanced.
	PointerUpdated bool `json:"pointer_updated"`
}

// PointerRepairedPayload is the payload for pointer_repaired event.
type PointerRepairedPayload struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}
