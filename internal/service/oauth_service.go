package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

const subjectSuffixLen = 8

var _ OAuthProvider = (*OAuthService)(nil)

// OAuthService handles interactions with the Google OAuth2 provider
type OAuthService struct {
	users       UserGenerator
	oAuthConfig *oauth2.Config
	// verifier is nil when id_token verification is disabled.
	verifier *oidc.IDTokenVerifier
	api      string
}

// NewGoogleOAuthService creates a new instance of OAuthService. When an issuer
// is configured its discovery document is fetched to build the id_token verifier.
func NewGoogleOAuthService(ctx context.Context, cfg *config.Config, users UserGenerator) (*OAuthService, error) {
	oAuthConfig := cfg.GoogleOAuth()
	if oAuthConfig == nil {
		return nil, errors.New("google oauth is not configured")
	}

	svc := &OAuthService{
		users:       users,
		oAuthConfig: oAuthConfig,
		api:         cfg.Google.UserInfoURL,
	}

	if cfg.Google.Issuer != "" {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		provider, err := oidc.NewProvider(ctx, cfg.Google.Issuer)
		if err != nil {
			log.Error().Err(err).Str("issuer", cfg.Google.Issuer).Msg("Failed to create OIDC provider")
			return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
		}
		svc.verifier = provider.Verifier(&oidc.Config{ClientID: oAuthConfig.ClientID})
	}
	return svc, nil
}

// GetAuthCodeURL generates the URL for the Google consent page
func (s *OAuthService) GetAuthCodeURL(state string) string {
	return s.oAuthConfig.AuthCodeURL(state)
}

// Authenticate exchanges the authorization code and maps the Google profile to
// a local user, creating it on first login. All failures wrap ErrOAuthExchange.
func (s *OAuthService) Authenticate(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", ErrOAuthExchange)
	}

	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
	}

	var verifiedSubject string
	if s.verifier != nil {
		idToken, err := s.verifyToken(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
		}
		verifiedSubject = idToken.Subject
	}

	profile, err := s.getUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("%w: profile has no subject", ErrOAuthExchange)
	}
	if verifiedSubject != "" && verifiedSubject != profile.Subject {
		log.Warn().Str("idTokenSubject", verifiedSubject).Str("profileSubject", profile.Subject).Msg("Userinfo subject does not match id_token")
		return nil, fmt.Errorf("%w: userinfo subject does not match id_token", ErrOAuthExchange)
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
	}
	log.Info().Str("userId", user.ID).Str("subject", profile.Subject).Msg("Google login succeeded")
	return user, nil
}

func (s *OAuthService) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oAuthConfig.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Error exchanging OAuth code for token")
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	if !token.Valid() {
		log.Warn().Msg("Received invalid OAuth token after exchange")
		return nil, errors.New("received invalid token")
	}
	log.Debug().Int("accessTokenLength", len(token.AccessToken)).Msg("OAuth token obtained successfully")
	return token, nil
}

func (s *OAuthService) verifyToken(ctx context.Context, token *oauth2.Token) (*oidc.IDToken, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		log.Warn().Msg("ID token missing from OAuth token response")
		return nil, errors.New("id_token missing from response")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to verify ID token")
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}
	log.Debug().Str("issuer", idToken.Issuer).Str("subject", idToken.Subject).Msg("ID token verified")
	return idToken, nil
}

// getUserInfo uses the access token to fetch the profile from the userinfo endpoint
func (s *OAuthService) getUserInfo(ctx context.Context, token *oauth2.Token) (*models.OAuthUser, error) {
	client := s.oAuthConfig.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.api, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("api", s.api).Msg("Error fetching user info")
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn().Int("statusCode", resp.StatusCode).Str("body", string(bodyBytes)).Str("api", s.api).Msg("Error response from userinfo endpoint")
		return nil, fmt.Errorf("user info request failed with status: %s", resp.Status)
	}

	var user models.OAuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		log.Error().Err(err).Msg("Error decoding user info JSON")
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &user, nil
}

// findOrCreateUser links the Google subject to a local user. A display name
// already owned by another account is retried once with a subject suffix.
func (s *OAuthService) findOrCreateUser(ctx context.Context, profile *models.OAuthUser) (*models.User, error) {
	suggested := profile.GivenName
	if suggested == "" {
		suggested = profile.Name
	}
	if suggested == "" {
		suggested = "google-" + profile.Subject
	}

	user, err := s.users.FindOrCreateByOAuth(ctx, profile.Subject, suggested)
	if !errors.Is(err, repository.ErrUserExists) {
		return user, err
	}

	suffix := profile.Subject
	if len(suffix) > subjectSuffixLen {
		suffix = suffix[:subjectSuffixLen]
	}
	fallback := suggested + "-" + suffix
	log.Info().Str("username", suggested).Str("fallback", fallback).Msg("Username taken, retrying with subject suffix")
	return s.users.FindOrCreateByOAuth(ctx, profile.Subject, fallback)
}
