package slack

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

type Client struct {
	api   *slack.Client
	botID string
}

// NewClient authenticates against Slack. Extra options are passed to
// slack.New, e.g. slack.OptionAPIURL for a test server.
func NewClient(ctx context.Context, token string, options ...slack.Option) (*Client, error) {
	api := slack.New(token, options...)

	authTest, err := api.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Slack: %w", err)
	}

	log.Printf("✅ Slack connected as %s", authTest.User)

	return &Client{
		api:   api,
		botID: authTest.UserID,
	}, nil
}

func (c *Client) GetBotID() string {
	return c.botID
}

// SendMessageWithBlocks posts blocks with text as the notification fallback
func (c *Client) SendMessageWithBlocks(ctx context.Context, channelID, text string, blocks []slack.Block) error {
	_, _, err := c.api.PostMessageContext(ctx,
		channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	return err
}
