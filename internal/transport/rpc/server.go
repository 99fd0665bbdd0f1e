// Package rpc exposes the chat service over JSON-RPC for internal clients.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/service"
)

// Server exposes internal RPC endpoints. Callers are trusted and name the
// acting user explicitly in every request.
type Server struct {
	listener  net.Listener
	rpcServer *rpc.Server
	logger    *slog.Logger
	done      chan struct{}
}

// NewServer creates a new RPC server bound to the chat service.
func NewServer(svc *service.Service, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rpcServer := rpc.NewServer()
	handler := &Handler{service: svc}
	if err := rpcServer.RegisterName("Chat", handler); err != nil {
		return nil, fmt.Errorf("register rpc handler: %w", err)
	}

	return &Server{
		rpcServer: rpcServer,
		logger:    logger,
		done:      make(chan struct{}),
	}, nil
}

// Start begins accepting RPC connections on the given address.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts RPC connections on ln until it is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.listener = ln

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				close(s.done)
				return nil
			}
			s.logger.Warn("rpc accept error", "error", err)
			continue
		}

		go s.ServeConn(conn)
	}
}

// ServeConn serves a single connection until the peer hangs up.
func (s *Server) ServeConn(conn net.Conn) {
	s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(conn))
}

// Shutdown stops accepting new RPC connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}

	if err := s.listener.Close(); err != nil {
		return err
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handler implements chat RPC methods.
type Handler struct {
	service *service.Service
}

// ActorArgs identifies the acting user.
type ActorArgs struct {
	ActingUser string `json:"acting_user"`
}

// DirectArgs names the other side of a one-to-one chat.
type DirectArgs struct {
	ActingUser string `json:"acting_user"`
	UserID     string `json:"user_id"`
}

// GroupArgs creates a group chat.
type GroupArgs struct {
	ActingUser string   `json:"acting_user"`
	Name       string   `json:"name"`
	Users      []string `json:"users"`
}

// RenameArgs renames a chat.
type RenameArgs struct {
	ActingUser string `json:"acting_user"`
	ChatID     string `json:"chat_id"`
	Name       string `json:"name"`
}

// MemberArgs adds or removes a group member.
type MemberArgs struct {
	ActingUser string `json:"acting_user"`
	ChatID     string `json:"chat_id"`
	UserID     string `json:"user_id"`
}

// SendArgs posts a message.
type SendArgs struct {
	ActingUser string `json:"acting_user"`
	ChatID     string `json:"chat_id"`
	Content    string `json:"content"`
}

// ChatArgs names a chat.
type ChatArgs struct {
	ActingUser string `json:"acting_user"`
	ChatID     string `json:"chat_id"`
}

// ChatList is returned by ListChats.
type ChatList struct {
	Chats []domain.ChatView `json:"chats"`
}

// MessageList is returned by ListMessages.
type MessageList struct {
	Messages []domain.MessageView `json:"messages"`
}

// rpcError prefixes err with its kind, since net/rpc carries only a string.
func rpcError(err error) error {
	if err == nil {
		return nil
	}
	var pf *domain.PartialFailureError
	if errors.As(err, &pf) {
		return fmt.Errorf("%s: message_id=%s: %v", domain.KindPartialFailure, pf.MessageID, pf.Err)
	}
	return fmt.Errorf("%s: %v", domain.KindOf(err), err)
}

func (h *Handler) actor(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: acting_user is required", domain.ErrUnauthenticated)
	}
	ok, err := h.service.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown user %s", domain.ErrUnauthenticated, userID)
	}
	return nil
}

// ResolveDirect returns the one-to-one chat with another user, creating it on
// first contact.
func (h *Handler) ResolveDirect(args *DirectArgs, resp *domain.ChatView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chat, err := h.service.ResolveOrCreateDirect(ctx, args.ActingUser, args.UserID)
	if err != nil {
		return rpcError(err)
	}
	*resp = *chat
	return nil
}

// ListChats lists the acting user's chats, most recently updated first.
func (h *Handler) ListChats(args *ActorArgs, resp *ChatList) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chats, err := h.service.ListChats(ctx, args.ActingUser)
	if err != nil {
		return rpcError(err)
	}
	resp.Chats = chats
	return nil
}

// CreateGroup creates a group chat administered by the acting user.
func (h *Handler) CreateGroup(args *GroupArgs, resp *domain.ChatView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chat, err := h.service.CreateGroup(ctx, args.ActingUser, args.Name, args.Users)
	if err != nil {
		return rpcError(err)
	}
	*resp = *chat
	return nil
}

// Rename changes a chat's display name.
func (h *Handler) Rename(args *RenameArgs, resp *domain.ChatView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chat, err := h.service.Rename(ctx, args.ActingUser, args.ChatID, args.Name)
	if err != nil {
		return rpcError(err)
	}
	*resp = *chat
	return nil
}

// AddMember adds a user to a group chat.
func (h *Handler) AddMember(args *MemberArgs, resp *domain.ChatView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chat, err := h.service.AddMember(ctx, args.ActingUser, args.ChatID, args.UserID)
	if err != nil {
		return rpcError(err)
	}
	*resp = *chat
	return nil
}

// RemoveMember removes a user from a group chat.
func (h *Handler) RemoveMember(args *MemberArgs, resp *domain.ChatView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	chat, err := h.service.RemoveMember(ctx, args.ActingUser, args.ChatID, args.UserID)
	if err != nil {
		return rpcError(err)
	}
	*resp = *chat
	return nil
}

// SendMessage posts a message as the acting user.
func (h *Handler) SendMessage(args *SendArgs, resp *domain.MessageView) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	msg, err := h.service.SendMessage(ctx, args.ActingUser, args.ChatID, args.Content)
	if err != nil {
		return rpcError(err)
	}
	*resp = *msg
	return nil
}

// ListMessages lists a chat's messages oldest first.
func (h *Handler) ListMessages(args *ChatArgs, resp *MessageList) error {
	ctx := context.Background()
	if err := h.actor(ctx, args.ActingUser); err != nil {
		return rpcError(err)
	}
	messages, err := h.service.ListMessages(ctx, args.ChatID)
	if err != nil {
		return rpcError(err)
	}
	resp.Messages = messages
	return nil
}
