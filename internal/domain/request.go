package domain

// AccessChatRequest asks for the direct chat with another user.
type AccessChatRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CreateGroupRequest creates a group chat owned by the caller.
type CreateGroupRequest struct {
	Name  string   `json:"name" validate:"required"`
	Users []string `json:"users" validate:"required,min=2,dive,required"`
}

// RenameChatRequest renames a group chat.
type RenameChatRequest struct {
	Name string `json:"name" validate:"required"`
}

// MemberRequest identifies a user to add to a group.
type MemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// SendMessageRequest carries the content of a new message.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Pic      string `json:"pic,omitempty" validate:"omitempty,url"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
