package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// playerCookieTTL matches how long a browser keeps its player identity.
const playerCookieTTL = 180 * 24 * time.Hour

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// playerID returns the player ID placed into the context by withPlayer.
func playerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer identifies the browser by a signed cookie, minting a new player
// ID when the cookie is missing or does not verify.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(s.opts.CookieName); err == nil && c.Value != "" {
			if sub, err := s.parsePlayerToken(c.Value); err == nil {
				id = sub
			} else {
				log.Debug().Err(err).Msg("discarding player cookie")
			}
		}
		if id == "" {
			id = uuid.NewString()
			if err := s.setPlayerCookie(w, id); err != nil {
				log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed", "could not create player")
				return
			}
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signPlayerToken creates an HS256 JWT whose subject is the player ID.
func (s *Server) signPlayerToken(id string, exp time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	return t.SignedString([]byte(s.opts.Secret))
}

// parsePlayerToken verifies a player token and returns its subject.
func (s *Server) parsePlayerToken(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// setPlayerCookie writes the player cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, id string) error {
	exp := s.now().Add(playerCookieTTL)
	tok, err := s.signPlayerToken(id, exp)
	if err != nil {
		return err
	}
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return nil
}
