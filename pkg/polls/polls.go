// Package polls is a typed client for the poll endpoints of the backend.
// All calls ride the shared transport client, so an authenticated session
// cookie established by a ceremony is carried automatically.
package polls

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-passkey/pollkey/pkg/transport"
)

// CreatorMe filters List to polls owned by the current session.
const CreatorMe = "me"

type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Options         []Option `json:"options"`
	CreatorID       string   `json:"creator_id"`
	CreatorUsername string   `json:"creator_username"`
	CreatedAt       string   `json:"created_at"`
	IsClosed        bool     `json:"is_closed"`
	TotalVotes      int      `json:"total_votes"`
}

type OptionStatistics struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type Statistics struct {
	TotalVotes        int                `json:"total_votes"`
	OptionsData       []OptionStatistics `json:"options_data"`
	CreatedAt         string             `json:"created_at"`
	TimeSinceCreation string             `json:"time_since_creation"`
}

// ListFilter narrows List. Creator may be a user ID or CreatorMe; Closed
// filters by open/closed state when non-nil.
type ListFilter struct {
	Creator string
	Closed  *bool
}

type createRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

type createResponse struct {
	PollID string `json:"poll_id"`
}

type voteRequest struct {
	OptionID string `json:"option_id"`
}

type Client struct {
	transport *transport.Client
}

func NewClient(tc *transport.Client) *Client {
	return &Client{transport: tc}
}

func (c *Client) List(ctx context.Context, filter ListFilter) ([]Poll, error) {
	query := url.Values{}
	if filter.Creator != "" {
		query.Set("creator", filter.Creator)
	}
	if filter.Closed != nil {
		query.Set("closed", strconv.FormatBool(*filter.Closed))
	}

	path := "/api/polls"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out []Poll
	if err := c.transport.GetJSON(ctx, "list polls", path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, pollID string) (*Poll, error) {
	var out Poll
	if err := c.transport.GetJSON(ctx, "get poll", "/api/polls/"+url.PathEscape(pollID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create makes a new poll and returns its ID. Requires an authenticated
// session.
func (c *Client) Create(ctx context.Context, title string, options []string) (string, error) {
	var out createResponse
	err := c.transport.PostJSON(ctx, "create poll", "/api/polls", &createRequest{
		Title:   title,
		Options: options,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.PollID, nil
}

func (c *Client) Vote(ctx context.Context, pollID, optionID string) error {
	return c.transport.PostJSON(ctx, "vote", "/api/polls/"+url.PathEscape(pollID)+"/vote", &voteRequest{OptionID: optionID}, nil)
}

func (c *Client) Close(ctx context.Context, pollID string) error {
	return c.transport.PostJSON(ctx, "close poll", "/api/polls/"+url.PathEscape(pollID)+"/close", nil, nil)
}

// Reset clears all votes on a poll the session owns.
func (c *Client) Reset(ctx context.Context, pollID string) error {
	return c.transport.PostJSON(ctx, "reset poll", "/api/polls/"+url.PathEscape(pollID)+"/reset", nil, nil)
}

func (c *Client) Results(ctx context.Context, pollID string) (*Statistics, error) {
	var out Statistics
	if err := c.transport.GetJSON(ctx, "poll results", "/api/polls/"+url.PathEscape(pollID)+"/results", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
