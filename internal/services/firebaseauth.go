package services

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseAuthService verifies Firebase Authentication ID tokens. The admin
// console and the mobile app both sign in through Firebase Auth, so the API
// accepts their ID tokens next to its own JWTs.
type FirebaseAuthService struct {
	client *auth.Client
}

// NewFirebaseAuthService creates a verifier from a credentials file
func NewFirebaseAuthService(credentialsFile string) (*FirebaseAuthService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}

	return &FirebaseAuthService{client: client}, nil
}

// NewFirebaseAuthServiceFromBase64 creates a verifier from base64-encoded
// credentials, for cloud deployments where uploading a file is awkward.
func NewFirebaseAuthServiceFromBase64(credentialsBase64 string) (*FirebaseAuthService, error) {
	ctx := context.Background()

	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}

	return &FirebaseAuthService{client: client}, nil
}

// VerifiedUser is the identity extracted from a valid Firebase ID token
type VerifiedUser struct {
	UID   string
	Email string
}

// VerifyIDToken validates a Firebase ID token and returns the caller identity
func (s *FirebaseAuthService) VerifyIDToken(ctx context.Context, idToken string) (*VerifiedUser, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid Firebase ID token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	return &VerifiedUser{UID: token.UID, Email: email}, nil
}
