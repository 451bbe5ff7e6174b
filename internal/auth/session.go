// Package auth implements the console session exchange: credentials in, one
// mutable bearer token out, re-acquired on demand.
package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/beevik/etree"

	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// SessionManager supplies the session token attached to every API request.
type SessionManager interface {
	// Token returns the current token, logging on first if none is held.
	Token(ctx context.Context) (string, error)
	// Refresh discards the current token and logs on again.
	Refresh(ctx context.Context) error
	// Logoff ends the session. Failures are swallowed; a dangling session
	// simply times out on the console.
	Logoff(ctx context.Context)
}

// Session is the default SessionManager: a connection-scoped mutable token,
// lazily acquired. It is not safe for concurrent use; the owning client
// serializes access.
type Session struct {
	endpoint   string
	userID     string
	password   string
	httpClient *http.Client

	token string
}

// NewSession creates a session manager for the given console endpoint. The
// HTTP client is the caller's: logon deliberately bypasses the API client's
// 401-retry path so it cannot recurse into itself.
func NewSession(endpoint, userID, password string, httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Session{
		endpoint:   endpoint,
		userID:     userID,
		password:   password,
		httpClient: httpClient,
	}
}

// Token implements SessionManager.Token.
func (s *Session) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		err := s.logon(ctx)
		if err != nil {
			return "", err
		}
	}

	return s.token, nil
}

// Refresh implements SessionManager.Refresh.
func (s *Session) Refresh(ctx context.Context) error {
	s.token = ""

	return s.logon(ctx)
}

// Logoff implements SessionManager.Logoff.
func (s *Session) Logoff(ctx context.Context) {
	if s.token == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.endpoint+constants.LogonPath, nil)
	if err != nil {
		return
	}

	req.Header.Set(constants.SessionHeader, s.token)

	resp, err := s.httpClient.Do(req)
	if err == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}

	s.token = ""
}

// logon exchanges the credentials for a session token at the fixed logon
// location.
func (s *Session) logon(ctx context.Context) error {
	body := logonRequestBody(s.userID, s.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint+constants.LogonPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building logon request: %w", err)
	}

	req.Header.Set("Content-Type", constants.ContentTypeWeb+"; type=LogonRequest")
	req.Header.Set("Accept", constants.ContentTypeWeb)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending logon request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading logon response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &hmc.AuthenticationError{Endpoint: s.endpoint}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &hmc.APIError{StatusCode: resp.StatusCode, Reason: "logon failed"}
	}

	token, err := parseLogonResponse(data)
	if err != nil {
		return err
	}

	s.token = token

	return nil
}

func logonRequestBody(userID, password string) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("LogonRequest")
	root.CreateAttr("schemaVersion", "V1_0")
	root.CreateElement("UserID").SetText(userID)
	root.CreateElement("Password").SetText(password)

	data, _ := doc.WriteToBytes()

	return data
}

// parseLogonResponse extracts the session token element. A response without
// one cannot be used for anything and is a protocol violation.
func parseLogonResponse(data []byte) (string, error) {
	doc := etree.NewDocument()

	err := doc.ReadFromBytes(data)
	if err != nil {
		return "", &hmc.ProtocolError{Op: "decoding logon response", Detail: err.Error()}
	}

	root := doc.Root()
	if root != nil {
		for _, child := range root.ChildElements() {
			if child.Tag == constants.SessionHeader && child.Text() != "" {
				return child.Text(), nil
			}
		}
	}

	return "", &hmc.ProtocolError{Op: "decoding logon response", Detail: "no session token element"}
}
