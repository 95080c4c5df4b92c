package ws

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"nhooyr.io/websocket"

	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth happens once at handshake via ?token=xxx (browser WebSocket clients
// cannot send an Authorization header); expired tokens reject the upgrade.
func ServeWS(hub *Hub, jwtSecret string, userRepo repository.UserRepository, allowedOrigin string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := validateToken(tokenStr, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		user, err := userRepo.GetByID(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if user == nil || !user.IsActive {
			http.Error(w, "user not found or inactive", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns(allowedOrigin),
		})
		if err != nil {
			log.WithError(err).Warn("ws: accept error")
			return
		}

		client := NewClient(hub, conn, user.ID, user.Name)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

// originPatterns converts a configured origin URL into the host pattern
// the websocket library matches against.
func originPatterns(allowedOrigin string) []string {
	if allowedOrigin == "" || allowedOrigin == "*" {
		return []string{"*"}
	}
	host := strings.TrimPrefix(strings.TrimPrefix(allowedOrigin, "https://"), "http://")
	return []string{host}
}

func validateToken(tokenStr, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(sub)
}
