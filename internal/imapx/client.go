// Package imapx wraps the go-imap client with the handful of operations a
// backup run needs: login, folder listing, selection, search-since, and
// verbatim message fetch.
package imapx

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Dialer establishes authenticated IMAP sessions over TLS.
type Dialer struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is one logged-in IMAP session.
type Client struct {
	c      *client.Client
	logger *slog.Logger
}

// Login connects to addr and authenticates.
func (d *Dialer) Login(addr, username, password string) (*Client, error) {
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("server", addr, "account", username)
	logger.Info("connecting to IMAP server")

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	imapClient, err := client.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create IMAP client: %w", err)
	}

	if err := imapClient.Login(username, password); err != nil {
		imapClient.Logout()
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	logger.Info("logged in")
	return &Client{c: imapClient, logger: logger}, nil
}

// ListFolders enumerates all folders in server-returned order.
func (c *Client) ListFolders() ([]string, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.c.List("", "*", mailboxes)
	}()

	var names []string
	for m := range mailboxes {
		names = append(names, m.Name)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return names, nil
}

// Select opens a folder read-only and returns its message count.
func (c *Client) Select(folder string) (uint32, error) {
	mbox, err := c.c.Select(folder, true)
	if err != nil {
		return 0, fmt.Errorf("failed to select %q: %w", folder, err)
	}
	return mbox.Messages, nil
}

// SearchSince returns the sequence numbers of messages received on or after
// since, within the currently selected folder.
func (c *Client) SearchSince(since time.Time) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	ids, err := c.c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return ids, nil
}

// Fetch retrieves the raw RFC822 bytes of one message, exactly as the
// server returned them.
func (c *Client) Fetch(id uint32) ([]byte, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(id)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.c.Fetch(seqset, items, messages)
	}()

	var raw []byte
	var readErr error
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		raw, readErr = io.ReadAll(body)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %d: %w", id, err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read message %d: %w", id, readErr)
	}
	if raw == nil {
		return nil, fmt.Errorf("no body section for message %d", id)
	}
	return raw, nil
}

// Logout closes the session.
func (c *Client) Logout() error {
	return c.c.Logout()
}
