package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type contextKey string

const accountKey contextKey = "account"

// withAccount authenticates the session cookie and stores the calling
// account in the request context. Requests without a valid session get 401.
func (s *Server) withAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		account, err := s.identity.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFrom returns the authenticated account stored by withAccount.
func accountFrom(r *http.Request) *models.Account {
	account, _ := r.Context().Value(accountKey).(*models.Account)
	return account
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Expires,
		MaxAge:   int(time.Until(session.Expires).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
