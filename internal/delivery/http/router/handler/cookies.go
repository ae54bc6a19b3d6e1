package handler

import (
	"net/http"
	"strings"
	"time"

	"bazaar/config"
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// RefreshTokenCookie is the cookie that carries the refresh token.
const RefreshTokenCookie = "refreshToken"

// cookieJar issues and clears the token cookies.
type cookieJar struct {
	secure     bool
	domain     string
	sameSite   http.SameSite
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func newCookieJar(cfg *config.Config) cookieJar {
	jar := cookieJar{secure: true, sameSite: http.SameSiteLaxMode}
	if cfg == nil {
		return jar
	}
	if cfg.Cookie != nil {
		jar.secure = cfg.Cookie.Secure
		jar.domain = cfg.Cookie.Domain
		jar.sameSite = parseSameSite(cfg.Cookie.SameSite)
	}
	if cfg.Auth != nil {
		jar.accessTTL = cfg.Auth.AccessTokenTTL
		jar.refreshTTL = cfg.Auth.RefreshTokenTTL
	}

	return jar
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (j cookieJar) cookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.domain,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: j.sameSite,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}

	return cookie
}

// setTokens sets both token cookies.
func (j cookieJar) setTokens(c echo.Context, tokens usecase.TokenPair) {
	c.SetCookie(j.cookie(middleware.AccessTokenCookie, tokens.AccessToken, j.accessTTL))
	c.SetCookie(j.cookie(RefreshTokenCookie, tokens.RefreshToken, j.refreshTTL))
}

// clearTokens expires both token cookies.
func (j cookieJar) clearTokens(c echo.Context) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		cookie := j.cookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}
