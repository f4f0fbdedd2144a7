package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/runtimepath"
	"github.com/1broseidon/gwk/internal/window"
)

// Client queries a running gwk over its inspection socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gwk: %w (is `gwk run` running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if _, err := conn.Write(append(reqData, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("gwk error: %s", resp.Error)
	}
	return &resp, nil
}

// call sends cmd and decodes the response data into out.
func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetStatus retrieves the full published status.
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows retrieves every tracked window.
func (c *Client) ListWindows() ([]window.Info, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// GetWindow retrieves one window by handle.
func (c *Client) GetWindow(h window.Handle) (*window.Info, error) {
	var info window.Info
	if err := c.call(CommandGetWindow, GetWindowPayload{Handle: h}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetGrab retrieves the grab holders.
func (c *Client) GetGrab() (*window.GrabInfo, error) {
	var grabs window.GrabInfo
	if err := c.call(CommandGetGrab, nil, &grabs); err != nil {
		return nil, err
	}
	return &grabs, nil
}

// GetScreens retrieves the screens known to the dispatcher.
func (c *Client) GetScreens() ([]native.Screen, error) {
	var data ScreensData
	if err := c.call(CommandGetScreens, nil, &data); err != nil {
		return nil, err
	}
	return data.Screens, nil
}

// Ping checks if gwk is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
