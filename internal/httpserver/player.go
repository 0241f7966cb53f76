// internal/httpserver/player.go
//
// Anonymous player identity.
// Every browser gets a random player ID (UUIDv4) wrapped in an HS256 JWT and
// stored in a cookie, so a client cannot pick another player's best-score key.
// The token is also accepted as "Authorization: Bearer <token>" for API clients.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

const playerTTL = 180 * 24 * time.Hour

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// playerID returns the player ID placed in the context by withPlayer.
func playerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves the player from the token, minting a new identity when
// the token is missing, expired or forged. It never rejects a request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.parsePlayerToken(s.bearerOrCookie(r))
		if err != nil {
			id = uuid.NewString()
			if err := s.issuePlayerCookie(w, id); err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			hlog.FromRequest(r).Debug().Str("player", id).Msg("new player")
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signPlayerToken creates an HS256 JWT whose subject is the player ID.
func (s *Server) signPlayerToken(id string, exp time.Time) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	return t.SignedString(s.secret())
}

// parsePlayerToken validates tok and returns the player ID it carries.
func (s *Server) parsePlayerToken(tok string) (string, error) {
	if tok == "" {
		return "", errors.New("no token")
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", errors.New("invalid subject")
	}
	return id.String(), nil
}

// issuePlayerCookie writes the player token cookie with appropriate security attributes.
func (s *Server) issuePlayerCookie(w http.ResponseWriter, id string) error {
	exp := time.Now().Add(playerTTL)
	tok, err := s.signPlayerToken(id, exp)
	if err != nil {
		return err
	}
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(),
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return nil
}

// bearerOrCookie extracts a bearer token from the Authorization header or the player cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookieName()); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) secret() []byte {
	if s.cfg.JWTSecret == "" {
		return []byte("dev_secret_change_me")
	}
	return []byte(s.cfg.JWTSecret)
}

func (s *Server) cookieName() string {
	if s.cfg.CookieName == "" {
		return "numguess_player"
	}
	return s.cfg.CookieName
}
