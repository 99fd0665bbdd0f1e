// Package domain defines the core domain models for the chat service.
package domain

// DirectChatName is the placeholder name stored on direct chats.
// Clients derive the title of a direct chat from the other participant.
const DirectChatName = "sender"

// EventType represents the type of a chat activity event.
type EventType string

const (
	EventTypeChatCreated     EventType = "chat_created"
	EventTypeChatRenamed     EventType = "chat_renamed"
	EventTypeMemberAdded     EventType = "member_added"
	EventTypeMemberRemoved   EventType = "member_removed"
	EventTypeAdminCleared    EventType = "admin_cleared"
	EventTypeMessageSent     EventType = "message_sent"
	EventTypePointerRepaired EventType = "pointer_repaired"
)

// PolicyAction names a chat mutation checked by the group policy.
type PolicyAction string

const (
	PolicyActionRename       PolicyAction = "rename"
	PolicyActionAddMember    PolicyAction = "add_member"
	PolicyActionRemoveMember PolicyAction = "remove_member"
)
