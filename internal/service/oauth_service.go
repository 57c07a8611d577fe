package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/dialog/flows"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
)

type IOAuthService interface {
	// LoginURL mints a Google consent URL whose state parameter carries the
	// waiting conversation, signed so the callback cannot be spoofed.
	LoginURL(conversationId, userId string) (string, error)
	HandleCallback(ctx context.Context, state, code string) error
}

type oauthService struct {
	conf          *oauth2.Config
	signingSecret []byte
	pending       *cache.Cache // one-time nonces of outstanding login links
	engine        *dialog.Engine
	userService   IUserService
	log           logger.ILogger
}

const loginLinkTTL = 15 * time.Minute

func NewOAuthService(
	conf *oauth2.Config,
	signingSecret string,
	engine *dialog.Engine,
	userService IUserService,
	log logger.ILogger,
) IOAuthService {
	return &oauthService{
		conf:          conf,
		signingSecret: []byte(signingSecret),
		pending:       cache.New(loginLinkTTL, 5*time.Minute),
		engine:        engine,
		userService:   userService,
		log:           log,
	}
}

type loginClaims struct {
	ConversationId string `json:"conversation_id"`
	UserId         string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *oauthService) LoginURL(conversationId, userId string) (string, error) {
	nonce := uuid.NewString()
	claims := loginClaims{
		ConversationId: conversationId,
		UserId:         userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(loginLinkTTL)),
		},
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingSecret)
	if err != nil {
		return "", err
	}

	s.pending.Set(nonce, conversationId, cache.DefaultExpiration)
	return s.conf.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, state, code string) error {
	claims := &loginClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.signingSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid oauth state: %w", err)
	}

	if _, found := s.pending.Get(claims.ID); !found {
		return errors.New("login link expired or already used")
	}
	s.pending.Delete(claims.ID)

	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("code exchange failed: %w", err)
	}

	email, err := s.fetchEmail(ctx, token)
	if err != nil {
		return err
	}

	creds := &entity.GoogleCredentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		creds.Expiry = &expiry
	}

	user, err := s.userService.Resolve(ctx, claims.UserId, "")
	if err != nil {
		return err
	}

	s.log.Info("OAuthService", "Login completed", map[string]interface{}{
		"conversation_id": claims.ConversationId, "user_id": claims.UserId, "email": email,
	})
	return s.engine.DeliverResult(ctx, claims.ConversationId, user, &flows.LoginResult{
		Credentials: creds,
		Email:       email,
	})
}

func (s *oauthService) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	resp, err := s.conf.Client(ctx, token).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return "", fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	var googleUser struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return "", err
	}
	return googleUser.Email, nil
}
