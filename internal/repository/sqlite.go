package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"
	"github.com/samber/lo"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrMissingReference is returned when an insert references a chat that does not exist.
var ErrMissingReference = errors.New("referenced record does not exist")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// NewSQLiteStore opens the database at dsn and applies pending migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// migrate applies the embedded migrations. The migrate instance is not
// closed because that would close the shared *sql.DB.
func (s *SQLiteStore) migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser creates a new user. A taken email yields ErrDuplicate.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email, pic, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.UserID, user.Name, user.Email, user.Pic, user.PasswordHash, user.CreatedAt)
	if isConstraint(err, sqlite3.ErrConstraintUnique) {
		return fmt.Errorf("%w: email %s", ErrDuplicate, user.Email)
	}
	return err
}

const userColumns = `user_id, name, email, pic, password_hash, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.Pic, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// GetUsers retrieves the users with the given IDs. Unknown IDs are skipped.
func (s *SQLiteStore) GetUsers(ctx context.Context, userIDs []string) ([]domain.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	marks, args := inClause(lo.Uniq(userIDs))
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id IN (`+marks+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// SearchUsers matches name or email case-insensitively, excluding excludeID.
// An empty query matches every user.
func (s *SQLiteStore) SearchUsers(ctx context.Context, query string, excludeID string, limit int) ([]domain.User, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE (name LIKE ? OR email LIKE ?) AND user_id <> ?
		 ORDER BY name ASC
		 LIMIT ?`,
		pattern, pattern, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// DirectKey returns the canonical key of an unordered participant pair.
func DirectKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair[0] + ":" + pair[1]
}

const chatColumns = `c.chat_id, c.name, c.is_group, c.group_admin, c.latest_message_id, c.created_at, c.updated_at`

func scanChat(row interface{ Scan(...interface{}) error }) (*domain.Chat, error) {
	var c domain.Chat
	var admin, latest sql.NullString
	if err := row.Scan(&c.ChatID, &c.Name, &c.IsGroup, &admin, &latest, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.GroupAdmin = admin.String
	c.LatestMessageID = latest.String
	return &c, nil
}

// getChatWhere loads one chat and its participants using q.
func (s *SQLiteStore) getChatWhere(ctx context.Context, q queryer, where string, args ...interface{}) (*domain.Chat, error) {
	chat, err := scanChat(q.QueryRowContext(ctx, `SELECT `+chatColumns+` FROM chats c WHERE `+where, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadParticipants(ctx, q, []*domain.Chat{chat}); err != nil {
		return nil, err
	}
	return chat, nil
}

// loadParticipants fills Participants in insertion order.
func (s *SQLiteStore) loadParticipants(ctx context.Context, q queryer, chats []*domain.Chat) error {
	if len(chats) == 0 {
		return nil
	}
	byID := lo.KeyBy(chats, func(c *domain.Chat) string { return c.ChatID })
	marks, args := inClause(lo.Keys(byID))
	rows, err := q.QueryContext(ctx,
		`SELECT chat_id, user_id FROM chat_members WHERE chat_id IN (`+marks+`) ORDER BY rowid ASC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var chatID, userID string
		if err := rows.Scan(&chatID, &userID); err != nil {
			return err
		}
		if c, ok := byID[chatID]; ok {
			c.Participants = append(c.Participants, userID)
		}
	}
	return rows.Err()
}

// FindDirectChat retrieves the direct chat between two users in either order.
func (s *SQLiteStore) FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	return s.getChatWhere(ctx, s.db, `c.direct_key = ?`, DirectKey(userA, userB))
}

// GetOrCreateDirectChat inserts chat unless a direct chat for the same pair
// already exists, and returns whichever chat holds the pair. The boolean
// reports whether chat was the one inserted. The UNIQUE direct_key column
// makes concurrent callers converge on the first committed row.
func (s *SQLiteStore) GetOrCreateDirectChat(ctx context.Context, chat *domain.Chat) (*domain.Chat, bool, error) {
	if len(chat.Participants) != 2 {
		return nil, false, fmt.Errorf("direct chat needs exactly 2 participants, got %d", len(chat.Participants))
	}
	key := DirectKey(chat.Participants[0], chat.Participants[1])

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO chats (chat_id, name, is_group, direct_key, created_at, updated_at)
		 VALUES (?, ?, 0, ?, ?, ?)
		 ON CONFLICT(direct_key) DO NOTHING`,
		chat.ChatID, chat.Name, key, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		return nil, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	created := affected > 0
	if created {
		if err := insertMembers(ctx, tx, chat.ChatID, chat.Participants, chat.CreatedAt); err != nil {
			return nil, false, err
		}
	}

	winner, err := s.getChatWhere(ctx, tx, `c.direct_key = ?`, key)
	if err != nil {
		return nil, false, err
	}
	if winner == nil {
		return nil, false, fmt.Errorf("direct chat %s vanished after insert", key)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return winner, created, nil
}

// CreateGroupChat creates a group chat and its members in one transaction.
func (s *SQLiteStore) CreateGroupChat(ctx context.Context, chat *domain.Chat) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chats (chat_id, name, is_group, group_admin, created_at, updated_at) VALUES (?, ?, 1, ?, ?, ?)`,
		chat.ChatID, chat.Name, nullString(chat.GroupAdmin), chat.CreatedAt, chat.UpdatedAt); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, chat.ChatID, chat.Participants, chat.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMembers(ctx context.Context, q queryer, chatID string, userIDs []string, at time.Time) error {
	for _, userID := range userIDs {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO chat_members (chat_id, user_id, joined_at) VALUES (?, ?, ?) ON CONFLICT(chat_id, user_id) DO NOTHING`,
			chatID, userID, at); err != nil {
			return err
		}
	}
	return nil
}

// GetChat retrieves a chat by ID.
func (s *SQLiteStore) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	return s.getChatWhere(ctx, s.db, `c.chat_id = ?`, chatID)
}

// ListChatsForUser lists the chats userID belongs to, most recently updated first.
func (s *SQLiteStore) ListChatsForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+chatColumns+` FROM chats c
		 JOIN chat_members m ON m.chat_id = c.chat_id
		 WHERE m.user_id = ?
		 ORDER BY c.updated_at DESC, c.rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	var chats []*domain.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the connection before loading members; in-memory stores hold only one.
	rows.Close()

	if err := s.loadParticipants(ctx, s.db, chats); err != nil {
		return nil, err
	}
	return lo.Map(chats, func(c *domain.Chat, _ int) domain.Chat { return *c }), nil
}

// RenameChat updates the name and updated_at of a chat.
func (s *SQLiteStore) RenameChat(ctx context.Context, chatID, name string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET name = ?, updated_at = ? WHERE chat_id = ?`,
		name, at, chatID)
	return rowsChanged(res, err)
}

// AddChatMember adds userID to a group chat. It returns false if the chat is
// not a group or userID is already a member.
func (s *SQLiteStore) AddChatMember(ctx context.Context, chatID, userID string, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	added, err := rowsChanged(tx.ExecContext(ctx,
		`INSERT INTO chat_members (chat_id, user_id, joined_at)
		 SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM chats WHERE chat_id = ? AND is_group = 1)
		 ON CONFLICT(chat_id, user_id) DO NOTHING`,
		chatID, userID, at, chatID))
	if err != nil || !added {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE chats SET updated_at = ? WHERE chat_id = ?`, at, chatID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// RemoveChatMember removes userID from a chat and clears group_admin if it
// pointed at userID. It returns false if userID is not a member or is the
// last remaining participant.
func (s *SQLiteStore) RemoveChatMember(ctx context.Context, chatID, userID string, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	removed, err := rowsChanged(tx.ExecContext(ctx,
		`DELETE FROM chat_members
		 WHERE chat_id = ? AND user_id = ?
		   AND (SELECT COUNT(*) FROM chat_members WHERE chat_id = ?) > 1`,
		chatID, userID, chatID))
	if err != nil || !removed {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE chats
		 SET updated_at = ?, group_admin = CASE WHEN group_admin = ? THEN NULL ELSE group_admin END
		 WHERE chat_id = ?`,
		at, userID, chatID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// SetLatestMessage points a chat at messageID and moves updated_at forward to
// at. It only applies when the message belongs to that chat.
func (s *SQLiteStore) SetLatestMessage(ctx context.Context, chatID, messageID string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET latest_message_id = ?, updated_at = MAX(updated_at, ?)
		 WHERE chat_id = ? AND EXISTS (SELECT 1 FROM messages WHERE message_id = ? AND chat_id = ?)`,
		messageID, at, chatID, messageID, chatID)
	return rowsChanged(res, err)
}

// ListStalePointers lists chats whose latest_message_id is not their newest message.
func (s *SQLiteStore) ListStalePointers(ctx context.Context, limit int) ([]domain.StalePointer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chat_id, latest_message_id, newest_id FROM (
			SELECT c.chat_id, c.latest_message_id, c.updated_at,
				(SELECT m.message_id FROM messages m
				 WHERE m.chat_id = c.chat_id
				 ORDER BY m.created_at DESC, m.rowid DESC
				 LIMIT 1) AS newest_id
			FROM chats c
		)
		WHERE newest_id IS NOT NULL
		  AND (latest_message_id IS NULL OR latest_message_id <> newest_id)
		ORDER BY updated_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StalePointer
	for rows.Next() {
		var sp domain.StalePointer
		var latest sql.NullString
		if err := rows.Scan(&sp.ChatID, &latest, &sp.NewestMessageID); err != nil {
			return nil, err
		}
		sp.LatestMessageID = latest.String
		out = append(out, sp)
	}
	return out, rows.Err()
}

// RepairLatestMessage moves the pointer from expected to newest if it has not
// changed since it was read. updated_at only moves forward.
func (s *SQLiteStore) RepairLatestMessage(ctx context.Context, chatID, expected, newest string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats
		 SET latest_message_id = ?,
		     updated_at = MAX(updated_at, (SELECT created_at FROM messages WHERE message_id = ?))
		 WHERE chat_id = ? AND latest_message_id IS ?
		   AND EXISTS (SELECT 1 FROM messages WHERE message_id = ? AND chat_id = ?)`,
		newest, newest, chatID, nullString(expected), newest, chatID)
	return rowsChanged(res, err)
}

// CreateMessage appends a message. A missing chat yields ErrMissingReference.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, chat_id, sender_id, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		message.MessageID, message.ChatID, message.SenderID, message.Content, message.CreatedAt)
	if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
		return fmt.Errorf("%w: chat %s", ErrMissingReference, message.ChatID)
	}
	return err
}

const messageColumns = `message_id, chat_id, sender_id, content, created_at`

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.MessageID, &msg.ChatID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// GetMessages retrieves the messages with the given IDs.
func (s *SQLiteStore) GetMessages(ctx context.Context, messageIDs []string) ([]domain.Message, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	marks, args := inClause(lo.Uniq(messageIDs))
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE message_id IN (`+marks+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListMessages retrieves every message of a chat in chronological order.
// Messages with equal timestamps keep their insertion order.
func (s *SQLiteStore) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE chat_id = ? ORDER BY created_at ASC, rowid ASC`,
		chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// CreateChatEvent creates a new activity event.
func (s *SQLiteStore) CreateChatEvent(ctx context.Context, event *domain.ChatEvent) error {
	payload := ""
	if event.Payload != nil {
		payload = string(event.Payload)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_events (event_id, chat_id, ts, type, actor_id, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		event.EventID, event.ChatID, event.Ts, event.Type, nullString(event.ActorID), payload)
	return err
}

// ListChatEvents retrieves activity events for a chat.
func (s *SQLiteStore) ListChatEvents(ctx context.Context, chatID string, afterTs int64, types []string, limit int) ([]domain.ChatEvent, error) {
	query := `SELECT event_id, chat_id, ts, type, actor_id, payload FROM chat_events WHERE chat_id = ?`
	args := []interface{}{chatID}

	if afterTs > 0 {
		query += ` AND ts > ?`
		args = append(args, afterTs)
	}

	if len(types) > 0 {
		marks, typeArgs := inClause(types)
		query += fmt.Sprintf(" AND type IN (%s)", marks)
		args = append(args, typeArgs...)
	}

	query += ` ORDER BY ts ASC, rowid ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ChatEvent
	for rows.Next() {
		var event domain.ChatEvent
		var actor, payload sql.NullString
		if err := rows.Scan(&event.EventID, &event.ChatID, &event.Ts, &event.Type, &actor, &payload); err != nil {
			return nil, err
		}
		event.ActorID = actor.String
		if payload.Valid && payload.String != "" {
			event.Payload = []byte(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func inClause(values []string) (string, []interface{}) {
	marks := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	return strings.Join(marks, ","), args
}

func rowsChanged(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
