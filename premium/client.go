package premium

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "vanity-bot/proto"
)

// Client wraps the gRPC connection to a remote entitlement service. It
// implements EntitlementChecker.
type Client struct {
	conn          *grpc.ClientConn
	client        pb.EntitlementServiceClient
	serverAddress string
}

// NewClient dials the entitlement service at serverAddress. The connection is
// established lazily; a down service surfaces as Check errors, which the
// registry treats as "fall back to local data".
func NewClient(serverAddress string) (*Client, error) {
	conn, err := grpc.NewClient(
		serverAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to entitlement service: %w", err)
	}

	log.Printf("[gRPC] Entitlement service client created for %s", serverAddress)
	return &Client{
		conn:          conn,
		client:        pb.NewEntitlementServiceClient(conn),
		serverAddress: serverAddress,
	}, nil
}

// Check queries the remote service for one guild's entitlement.
func (c *Client) Check(ctx context.Context, guildID string) (bool, string, error) {
	resp, err := c.client.Check(ctx, &pb.EntitlementRequest{GuildId: guildID})
	if err != nil {
		return false, "", fmt.Errorf("entitlement check for guild %s failed: %w", guildID, err)
	}
	return resp.GetPremium(), resp.GetTier(), nil
}

// Close tears down the gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
