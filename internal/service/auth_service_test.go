package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/config"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate admin model failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service-tests"
	cfg.JWT.ExpireHours = 1
	return NewAuthService(cfg, repository.NewAdminRepository(db)), db
}

func createAdmin(t *testing.T, service *AuthService, db *gorm.DB, username, password string, active bool) *models.Admin {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: hash, IsActive: active}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	// GORM omits zero-value fields on create, so the default:true column
	// tag would silently override IsActive: false.
	if !active {
		if err := db.Model(admin).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate admin failed: %v", err)
		}
	}
	return admin
}

func TestLoginIssuesValidToken(t *testing.T) {
	service, db := setupAuthTest(t)
	created := createAdmin(t, service, db, "admin", "s3cret-pass", true)

	admin, token, expiresAt, err := service.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.ID != created.ID {
		t.Fatalf("logged in as admin %d, want %d", admin.ID, created.ID)
	}
	if expiresAt.IsZero() {
		t.Fatalf("expiry not set")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login not stamped")
	}

	claims, err := service.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != created.ID || claims.Username != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, db := setupAuthTest(t)
	createAdmin(t, service, db, "admin", "s3cret-pass", true)

	if _, _, _, err := service.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want %v", err, ErrInvalidCredentials)
	}
	if _, _, _, err := service.Login("nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	service, db := setupAuthTest(t)
	createAdmin(t, service, db, "admin", "s3cret-pass", false)

	if _, _, _, err := service.Login("admin", "s3cret-pass"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account: got %v, want %v", err, ErrAccountDisabled)
	}
}

func TestParseJWTRejectsForeignToken(t *testing.T) {
	service, db := setupAuthTest(t)
	admin := createAdmin(t, service, db, "admin", "s3cret-pass", true)

	other := &AuthService{cfg: &config.Config{}, adminRepo: nil}
	other.cfg.JWT.SecretKey = "a-completely-different-secret"
	other.cfg.JWT.ExpireHours = 1
	foreign, _, err := other.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate foreign token failed: %v", err)
	}

	if _, err := service.ParseJWT(foreign); err == nil {
		t.Fatalf("token signed with another secret was accepted")
	}
}
