// Package tenant derives the active tenant for a request. Every
// downstream query must filter by the resolved id; resolution itself
// never fails, it degrades to the configured default tenant.
package tenant

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"kennel-service/internal/model"
	"kennel-service/pkg/logger"
	"kennel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContextKey is where the middleware stores the resolved tenant id in
// the echo context.
const ContextKey = "resolved_tenant_id"

// HeaderName carries an explicit tenant id set by a previous
// resolution step (e.g. an edge rewrite).
const HeaderName = "X-Tenant-ID"

// CookieName is the fallback cookie written by the web frontend
const CookieName = "tenant_id"

// Resolution sources, in priority order
const (
	SourceSubdomain = "subdomain"
	SourceHeader    = "header"
	SourceCookie    = "cookie"
	SourceClaims    = "claims"
	SourceDefault   = "default"
)

// Subdomains that never map to a tenant
var reservedSubdomains = map[string]bool{
	"www": true, "api": true, "app": true, "admin": true,
}

// Resolver produces a tenant id for an incoming request
type Resolver struct {
	db         *gorm.DB
	defaultID  uint
	baseDomain string
}

func NewResolver(db *gorm.DB, defaultID uint, baseDomain string) *Resolver {
	return &Resolver{db: db, defaultID: defaultID, baseDomain: baseDomain}
}

// Resolve derives the tenant id using, in priority order: a
// non-default subdomain of the request host, the explicit tenant
// header or cookie, the authenticated user's tenant claim, and
// finally the default tenant. The source of the resolution is
// returned for logging and metrics.
func (r *Resolver) Resolve(c echo.Context) (uint, string) {
	log := logger.FromContext(c)

	if id, ok := r.fromSubdomain(c.Request().Host); ok {
		return id, SourceSubdomain
	}

	if id, ok := parseTenantID(c.Request().Header.Get(HeaderName)); ok {
		return id, SourceHeader
	}

	if cookie, err := c.Cookie(CookieName); err == nil {
		if id, ok := parseTenantID(cookie.Value); ok {
			return id, SourceCookie
		}
	}

	// Tenant association stored on the authenticated user, placed in
	// the context by the auth middleware.
	if id, ok := c.Get("tenant_id").(uint); ok && id != 0 {
		return id, SourceClaims
	}

	log.Debug("Tenant resolution fell through to default",
		zap.String("host", c.Request().Host),
		zap.Uint("default_tenant_id", r.defaultID))
	return r.defaultID, SourceDefault
}

// fromSubdomain looks up the tenant owning the host's subdomain.
// Lookup failures degrade to the lower-priority sources rather than
// erroring.
func (r *Resolver) fromSubdomain(host string) (uint, bool) {
	sub := r.subdomain(host)
	if sub == "" || reservedSubdomains[sub] {
		return 0, false
	}

	var t model.Tenant
	err := r.db.Where("subdomain = ?", sub).First(&t).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.GetLogger().Warn("Tenant subdomain lookup failed",
				zap.String("subdomain", sub), zap.Error(err))
		}
		return 0, false
	}
	return t.ID, true
}

func (r *Resolver) subdomain(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	base := strings.ToLower(r.baseDomain)
	if host == base || !strings.HasSuffix(host, "."+base) {
		return ""
	}

	sub := strings.TrimSuffix(host, "."+base)
	if strings.Contains(sub, ".") {
		// Only single-level subdomains map to tenants
		return ""
	}
	return sub
}

func parseTenantID(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Middleware resolves the tenant and stores it in the request context.
// Handlers read it with FromEcho and pass it explicitly into every
// service call.
func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, source := r.Resolve(c)
			c.Set(ContextKey, id)
			prometheus.RecordTenantResolution(source)
			return next(c)
		}
	}
}

// FromEcho returns the resolved tenant id stored by the middleware
func FromEcho(c echo.Context) uint {
	if id, ok := c.Get(ContextKey).(uint); ok {
		return id
	}
	return 0
}
