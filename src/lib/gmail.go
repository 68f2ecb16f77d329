package lib

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var gmailsvc *gmail.Service

// GoogleOAuthConfig assembles the OAuth client used for both the consent
// callback and the Gmail send path.
func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}
}

// GmailConfigured reports whether the API send path has credentials; when it
// does not, callers fall back to SMTP.
func GmailConfigured() bool {
	return os.Getenv("GOOGLE_REFRESH_TOKEN") != ""
}

func getGmailService(ctx context.Context) (*gmail.Service, error) {
	if gmailsvc != nil {
		return gmailsvc, nil
	}
	conf := GoogleOAuthConfig()
	tok := &oauth2.Token{RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN")}
	svc, err := gmail.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, err
	}
	gmailsvc = svc
	return svc, nil
}

// NewGmailService replaces the cached service, used by tests.
func NewGmailService(svc *gmail.Service) {
	gmailsvc = svc
}

// GmailSendMessage sends one HTML message from the connected account. The
// token source refreshes the access token transparently.
func GmailSendMessage(ctx context.Context, to, subject, html string) error {
	svc, err := getGmailService(ctx)
	if err != nil {
		return err
	}
	raw := strings.Join([]string{
		"Content-Type: text/html; charset=utf-8",
		"MIME-Version: 1.0",
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		html,
	}, "\n")
	msg := &gmail.Message{
		Raw: base64.RawURLEncoding.EncodeToString([]byte(raw)),
	}
	_, err = svc.Users.Messages.Send("me", msg).Do()
	return err
}
