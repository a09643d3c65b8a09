// README: Firebase Admin SDK initialisation and ID-token verifier for admin routes.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// IDToken holds the verified token data used by downstream middleware.
type IDToken struct {
	UID    string
	Claims map[string]interface{}
}

// Role returns the custom "role" claim, or "" when it is absent.
func (t *IDToken) Role() string {
	role, _ := t.Claims["role"].(string)
	return role
}

// Email returns the "email" claim, or "" when it is absent.
func (t *IDToken) Email() string {
	email, _ := t.Claims["email"].(string)
	return email
}

// TokenVerifier verifies a raw Firebase ID token string and returns token data.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*IDToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a TokenVerifier using the Firebase Admin SDK.
// If credentialsFile is empty, application-default credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firebase: project id is required")
	}
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*IDToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &IDToken{UID: token.UID, Claims: token.Claims}, nil
}
