package tenant

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kennel-service/internal/model"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Tenant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newContext(t *testing.T, host string, header http.Header, cookies ...*http.Cookie) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Host = host
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestResolve_SubdomainWins(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&model.Tenant{Name: "Alpha Kennels", Subdomain: "alpha"}).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	var seeded model.Tenant
	db.Where("subdomain = ?", "alpha").First(&seeded)

	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "alpha.kennelhub.io", http.Header{HeaderName: []string{"42"}})

	id, source := r.Resolve(c)
	if id != seeded.ID || source != SourceSubdomain {
		t.Fatalf("expected subdomain resolution to tenant %d, got %d via %s", seeded.ID, id, source)
	}
}

func TestResolve_ReservedSubdomainFallsThrough(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "www.kennelhub.io", http.Header{HeaderName: []string{"42"}})

	id, source := r.Resolve(c)
	if id != 42 || source != SourceHeader {
		t.Fatalf("expected header resolution to 42, got %d via %s", id, source)
	}
}

func TestResolve_UnknownSubdomainFallsThrough(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "ghost.kennelhub.io", nil)

	id, source := r.Resolve(c)
	if id != 1 || source != SourceDefault {
		t.Fatalf("expected default tenant, got %d via %s", id, source)
	}
}

func TestResolve_HeaderBeatsCookie(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "kennelhub.io",
		http.Header{HeaderName: []string{"7"}},
		&http.Cookie{Name: CookieName, Value: "8"})

	id, source := r.Resolve(c)
	if id != 7 || source != SourceHeader {
		t.Fatalf("expected header resolution to 7, got %d via %s", id, source)
	}
}

func TestResolve_Cookie(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "kennelhub.io", nil, &http.Cookie{Name: CookieName, Value: "8"})

	id, source := r.Resolve(c)
	if id != 8 || source != SourceCookie {
		t.Fatalf("expected cookie resolution to 8, got %d via %s", id, source)
	}
}

func TestResolve_Claims(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 1, "kennelhub.io")
	c := newContext(t, "kennelhub.io", nil)
	c.Set("tenant_id", uint(9))

	id, source := r.Resolve(c)
	if id != 9 || source != SourceClaims {
		t.Fatalf("expected claims resolution to 9, got %d via %s", id, source)
	}
}

func TestResolve_DefaultNeverFails(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, 3, "kennelhub.io")
	c := newContext(t, "kennelhub.io", http.Header{HeaderName: []string{"not-a-number"}})

	id, source := r.Resolve(c)
	if id != 3 || source != SourceDefault {
		t.Fatalf("expected default tenant 3, got %d via %s", id, source)
	}
}

func TestResolve_HostWithPort(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&model.Tenant{Name: "Beta", Subdomain: "beta"}).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	var seeded model.Tenant
	db.Where("subdomain = ?", "beta").First(&seeded)

	r := NewResolver(db, 1, "localhost")
	c := newContext(t, "beta.localhost:8080", nil)

	id, source := r.Resolve(c)
	if id != seeded.ID || source != SourceSubdomain {
		t.Fatalf("expected subdomain resolution despite port, got %d via %s", id, source)
	}
}
