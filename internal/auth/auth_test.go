package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"Admin", RoleAdmin, false},
		{"admin", RoleAdmin, false},
		{" MANAGER ", RoleManager, false},
		{"vendor", RoleVendor, false},
		{"guest", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		cap                     Capability
		admin, manager, vendor bool
	}{
		{CapSKUManage, true, true, false},
		{CapSKUView, true, true, true},
		{CapProductCreate, true, true, true},
		{CapProductView, true, true, true},
		{CapProductPriceEdit, true, true, true},
		{CapProductDelete, true, false, false},
		{CapProductAnalysis, true, false, false},
		{CapStockPurchase, true, true, true},
		{CapStockIssue, true, true, true},
		{CapTransactionsView, true, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.cap), func(t *testing.T) {
			if RoleAdmin.Can(tt.cap) != tt.admin {
				t.Errorf("admin: expected %v", tt.admin)
			}
			if RoleManager.Can(tt.cap) != tt.manager {
				t.Errorf("manager: expected %v", tt.manager)
			}
			if RoleVendor.Can(tt.cap) != tt.vendor {
				t.Errorf("vendor: expected %v", tt.vendor)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	vendor := Menu(RoleVendor)
	for _, section := range vendor {
		if section.Title == "Transactions" {
			t.Error("vendor must not see the transactions section")
		}
		for _, item := range section.Items {
			if item.Capability == CapSKUManage || item.Capability == CapProductAnalysis {
				t.Errorf("vendor must not see %s", item.Label)
			}
		}
	}

	admin := Menu(RoleAdmin)
	if len(admin) != 4 {
		t.Errorf("expected 4 sections for admin, got %d", len(admin))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Configure("test-secret", time.Minute)

	token, err := GenerateToken(models.User{ID: "u1", Username: "alice", Role: "manager"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := UserFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" || user.Role != string(RoleManager) {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUserFromToken_Rejects(t *testing.T) {
	Configure("test-secret", time.Minute)

	unknownRole, _ := GenerateToken(models.User{ID: "u1", Username: "bob", Role: "guest"})
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "Admin", "exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	wrongKey, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "Admin", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("other-secret"))

	for name, token := range map[string]string{
		"unknown role": unknownRole,
		"expired":      expired,
		"wrong key":    wrongKey,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := UserFromToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
