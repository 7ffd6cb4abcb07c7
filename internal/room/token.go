package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"
)

const tokenTTL = 6 * time.Hour

// MintToken creates a join token for identity in roomName.
func MintToken(apiKey, apiSecret, roomName, identity string) (string, error) {
	if apiKey == "" || apiSecret == "" {
		return "", errors.New("mint room token: api key and secret are required")
	}
	if roomName == "" {
		return "", errors.New("mint room token: room name is required")
	}

	at := auth.NewAccessToken(apiKey, apiSecret)
	at.AddGrant(&auth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}).
		SetIdentity(identity).
		SetName(identity).
		SetValidFor(tokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("mint room token: %w", err)
	}
	return token, nil
}
