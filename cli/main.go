// Command chatctl is a command line client for the chat HTTP API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

const usage = `usage: chatctl [-addr URL] [-token TOKEN] <command> [flags]

commands:
  register -name N -email E -password P   create an account and print its token
  login -email E -password P              print a fresh token
  users [-q QUERY]                        search users
  chats                                   list your chats
  direct -user ID                         open a one-to-one chat
  group -name N -users ID,ID              create a group chat
  rename -chat ID -name N                 rename a chat
  add -chat ID -user ID                   add a group member
  remove -chat ID -user ID                remove a group member
  send -chat ID -text T                   send a message
  messages -chat ID                       list a chat's messages
  events -chat ID                         list a chat's activity
  talk -chat ID                           send lines from stdin, /quit to exit
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		color.Red.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	global := flag.NewFlagSet("chatctl", flag.ContinueOnError)
	global.SetOutput(out)
	global.Usage = func() { fmt.Fprint(out, usage) }
	addr := global.String("addr", envOr("CHAT_ADDR", "http://localhost:8080"), "chat server base URL")
	token := global.String("token", os.Getenv("CHAT_TOKEN"), "access token")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	client := NewClient(*addr, *token)
	cmd, rest := global.Arg(0), global.Args()[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)

	switch cmd {
	case "register":
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		pic := fs.String("pic", "", "avatar URL")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := client.Register(ctx, domain.RegisterRequest{Name: *name, Email: *email, Password: *password, Pic: *pic})
		if err != nil {
			return err
		}
		printAuth(out, resp)

	case "login":
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := client.Login(ctx, domain.LoginRequest{Email: *email, Password: *password})
		if err != nil {
			return err
		}
		printAuth(out, resp)

	case "users":
		query := fs.String("q", "", "name or email fragment")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		users, err := client.SearchUsers(ctx, *query)
		if err != nil {
			return err
		}
		printUsers(out, users)

	case "chats":
		chats, err := client.ListChats(ctx)
		if err != nil {
			return err
		}
		printChats(out, chats)

	case "direct":
		user := fs.String("user", "", "other user id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return printChat(out)(client.Direct(ctx, *user))

	case "group":
		name := fs.String("name", "", "group name")
		users := fs.String("users", "", "comma separated user ids")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return printChat(out)(client.CreateGroup(ctx, *name, splitList(*users)))

	case "rename":
		chatID := fs.String("chat", "", "chat id")
		name := fs.String("name", "", "new name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return printChat(out)(client.Rename(ctx, *chatID, *name))

	case "add", "remove":
		chatID := fs.String("chat", "", "chat id")
		user := fs.String("user", "", "user id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if cmd == "add" {
			return printChat(out)(client.AddMember(ctx, *chatID, *user))
		}
		return printChat(out)(client.RemoveMember(ctx, *chatID, *user))

	case "send":
		chatID := fs.String("chat", "", "chat id")
		text := fs.String("text", "", "message text")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		msg, err := client.Send(ctx, *chatID, *text)
		if err != nil {
			return err
		}
		printMessages(out, []domain.MessageView{*msg})

	case "messages":
		chatID := fs.String("chat", "", "chat id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		messages, err := client.Messages(ctx, *chatID)
		if err != nil {
			return err
		}
		printMessages(out, messages)

	case "events":
		chatID := fs.String("chat", "", "chat id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		events, err := client.Events(ctx, *chatID)
		if err != nil {
			return err
		}
		printEvents(out, events)

	case "talk":
		chatID := fs.String("chat", "", "chat id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return talk(ctx, client, *chatID, stdin, out)

	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// talk sends each non-empty input line to chatID until EOF or /quit.
func talk(ctx context.Context, client *Client, chatID string, stdin io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Type a message and press Enter to send. /quit to exit.")
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" {
			return nil
		}
		msg, err := client.Send(ctx, chatID, input)
		if err != nil {
			fmt.Fprintln(out, color.Red.Sprint(err))
			continue
		}
		fmt.Fprintf(out, "%s %s\n", color.Gray.Sprint(msg.CreatedAt.Local().Format("15:04:05")), msg.Content)
	}
	return scanner.Err()
}

func printAuth(out io.Writer, resp *domain.AuthResponse) {
	fmt.Fprintf(out, "%s %s <%s>\n", color.Green.Sprint("signed in as"), resp.User.Name, resp.User.Email)
	fmt.Fprintf(out, "user id: %s\n", resp.User.UserID)
	fmt.Fprintf(out, "export CHAT_TOKEN=%s\n", resp.Token)
}

func printChat(out io.Writer) func(*domain.ChatView, error) error {
	return func(chat *domain.ChatView, err error) error {
		if err != nil {
			return err
		}
		printChats(out, []domain.ChatView{*chat})
		return nil
	}
}

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func printUsers(out io.Writer, users []domain.PublicUser) {
	table := newTable(out, []string{"ID", "Name", "Email"})
	for _, u := range users {
		table.Append([]string{u.UserID, u.Name, u.Email})
	}
	table.Render()
}

func printChats(out io.Writer, chats []domain.ChatView) {
	table := newTable(out, []string{"ID", "Name", "Kind", "Members", "Admin", "Latest", "Updated"})
	for _, c := range chats {
		kind := "direct"
		if c.IsGroup {
			kind = "group"
		}
		names := make([]string, 0, len(c.Participants))
		for _, p := range c.Participants {
			names = append(names, p.Name)
		}
		admin := ""
		if c.GroupAdmin != nil {
			admin = c.GroupAdmin.Name
		}
		latest := ""
		if c.LatestMessage != nil {
			latest = c.LatestMessage.Sender.Name + ": " + truncate(c.LatestMessage.Content, 40)
		}
		table.Append([]string{c.ChatID, c.Name, kind, strings.Join(names, ", "), admin, latest, c.UpdatedAt.Local().Format(time.DateTime)})
	}
	table.Render()
}

func printMessages(out io.Writer, messages []domain.MessageView) {
	table := newTable(out, []string{"Time", "From", "Message"})
	for _, m := range messages {
		table.Append([]string{m.CreatedAt.Local().Format(time.DateTime), m.Sender.Name, m.Content})
	}
	table.Render()
}

func printEvents(out io.Writer, events []domain.ChatEvent) {
	table := newTable(out, []string{"Time", "Type", "Actor", "Payload"})
	for _, e := range events {
		ts := time.UnixMilli(e.Ts).Local().Format(time.DateTime)
		table.Append([]string{ts, string(e.Type), e.ActorID, string(e.Payload)})
	}
	table.Render()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
