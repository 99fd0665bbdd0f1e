package rpc

import (
	"io"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/service"
	"github.com/xiaot623/gogo/chat/tests/helpers"
)

func newTestClient(t *testing.T, users ...string) *rpc.Client {
	t.Helper()
	db := helpers.NewTestSQLiteStore(t)
	helpers.SeedUsers(t, db, users...)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(service.New(db, nil, nil, nil, nil, logger), logger)
	require.NoError(t, err)

	serverConn, clientConn := net.Pipe()
	go srv.ServeConn(serverConn)

	client := jsonrpc.NewClient(clientConn)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestChatOverRPC(t *testing.T) {
	client := newTestClient(t, "A", "B", "C")

	var group domain.ChatView
	require.NoError(t, client.Call("Chat.CreateGroup", &GroupArgs{
		ActingUser: "A",
		Name:       "Trip",
		Users:      []string{"B", "C"},
	}, &group))
	assert.True(t, group.IsGroup)
	assert.Len(t, group.Participants, 3)

	var msg domain.MessageView
	require.NoError(t, client.Call("Chat.SendMessage", &SendArgs{
		ActingUser: "B",
		ChatID:     group.ChatID,
		Content:    "hello",
	}, &msg))
	assert.Equal(t, "B", msg.Sender.UserID)

	var messages MessageList
	require.NoError(t, client.Call("Chat.ListMessages", &ChatArgs{ActingUser: "C", ChatID: group.ChatID}, &messages))
	require.Len(t, messages.Messages, 1)
	assert.Equal(t, "hello", messages.Messages[0].Content)

	var direct domain.ChatView
	require.NoError(t, client.Call("Chat.ResolveDirect", &DirectArgs{ActingUser: "A", UserID: "B"}, &direct))
	assert.False(t, direct.IsGroup)

	var chats ChatList
	require.NoError(t, client.Call("Chat.ListChats", &ActorArgs{ActingUser: "A"}, &chats))
	require.Len(t, chats.Chats, 2)
	assert.Equal(t, direct.ChatID, chats.Chats[0].ChatID)

	var renamed domain.ChatView
	require.NoError(t, client.Call("Chat.Rename", &RenameArgs{ActingUser: "A", ChatID: group.ChatID, Name: "Road trip"}, &renamed))
	assert.Equal(t, "Road trip", renamed.Name)

	var removed domain.ChatView
	require.NoError(t, client.Call("Chat.RemoveMember", &MemberArgs{ActingUser: "A", ChatID: group.ChatID, UserID: "C"}, &removed))
	assert.Len(t, removed.Participants, 2)

	var added domain.ChatView
	require.NoError(t, client.Call("Chat.AddMember", &MemberArgs{ActingUser: "A", ChatID: group.ChatID, UserID: "C"}, &added))
	assert.Len(t, added.Participants, 3)
}

func TestRPCErrorsCarryKind(t *testing.T) {
	client := newTestClient(t, "A", "B")

	var chat domain.ChatView
	err := client.Call("Chat.ResolveDirect", &DirectArgs{ActingUser: "ghost", UserID: "A"}, &chat)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), string(domain.KindUnauthenticated)), err.Error())

	err = client.Call("Chat.ResolveDirect", &DirectArgs{ActingUser: "A", UserID: "A"}, &chat)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), string(domain.KindInvalidArgument)), err.Error())

	var messages MessageList
	err = client.Call("Chat.ListMessages", &ChatArgs{ActingUser: "A", ChatID: "missing"}, &messages)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), string(domain.KindNotFound)), err.Error())
}
