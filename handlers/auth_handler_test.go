package handlers

import (
	"strings"
	"testing"

	"kisanmandi_backend/models"
)

func TestSignupAndDuplicates(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]interface{}{
		"username": "ramesh",
		"email":    "ramesh@example.com",
		"password": "password123",
		"role":     "farmer",
		"location": "Punjab",
	}

	status, resp := doJSON(t, app, "POST", "/api/signup", "", body)
	wantStatus(t, status, 201, resp)
	if resp["user_id"] == nil {
		t.Fatal("signup response missing user_id")
	}

	// Same username, different email: still rejected.
	dup := map[string]interface{}{
		"username": "ramesh",
		"email":    "other@example.com",
		"password": "different",
	}
	status, resp = doJSON(t, app, "POST", "/api/signup", "", dup)
	wantStatus(t, status, 400, resp)
	if resp["error"] != "Username already exists" {
		t.Fatalf("error = %v, want duplicate-username message", resp["error"])
	}

	// Same email, different username.
	dup = map[string]interface{}{
		"username": "someone_else",
		"email":    "ramesh@example.com",
		"password": "different",
	}
	status, resp = doJSON(t, app, "POST", "/api/signup", "", dup)
	wantStatus(t, status, 400, resp)
	if resp["error"] != "Email already registered" {
		t.Fatalf("error = %v, want duplicate-email message", resp["error"])
	}
}

func TestSignupInvalidRole(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := doJSON(t, app, "POST", "/api/signup", "", map[string]interface{}{
		"username": "mallory",
		"email":    "mallory@example.com",
		"password": "password123",
		"role":     "superadmin",
	})
	wantStatus(t, status, 400, resp)
}

func TestSignupDefaultRoleIsFarmer(t *testing.T) {
	app, db := newTestApp(t)

	status, resp := doJSON(t, app, "POST", "/api/signup", "", map[string]interface{}{
		"username": "kavita",
		"email":    "kavita@example.com",
		"password": "password123",
	})
	wantStatus(t, status, 201, resp)

	var user models.User
	if err := db.Where("username = ?", "kavita").First(&user).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Role != models.RoleFarmer {
		t.Fatalf("role = %q, want farmer", user.Role)
	}
}

func TestLogin(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "anita", models.RoleBuyer)

	status, resp := doJSON(t, app, "POST", "/api/login", "", map[string]interface{}{
		"username": "anita",
		"password": "password123",
	})
	wantStatus(t, status, 200, resp)
	if resp["token"] == nil || resp["token"] == "" {
		t.Fatal("login response missing token")
	}

	user, ok := resp["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("login response missing user object: %v", resp)
	}
	if user["username"] != "anita" || user["role"] != "buyer" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	for key := range user {
		if strings.Contains(key, "password") {
			t.Fatalf("user payload leaks credential field %q", key)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "anita", models.RoleBuyer)

	status, resp := doJSON(t, app, "POST", "/api/login", "", map[string]interface{}{
		"username": "anita",
		"password": "wrong-password",
	})
	wantStatus(t, status, 401, resp)
	if resp["error"] != "Invalid credentials" {
		t.Fatalf("error = %v, want invalid-credentials message", resp["error"])
	}
}

func TestLoginUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := doJSON(t, app, "POST", "/api/login", "", map[string]interface{}{
		"username": "ghost",
		"password": "password123",
	})
	wantStatus(t, status, 401, resp)
}

func TestGetUserRequiresToken(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "anita", models.RoleBuyer)

	status, resp := doJSON(t, app, "GET", "/api/user", "", nil)
	wantStatus(t, status, 401, resp)

	status, resp = doJSON(t, app, "GET", "/api/user", bearerToken(t, user), nil)
	wantStatus(t, status, 200, resp)
	if resp["username"] != "anita" {
		t.Fatalf("username = %v, want anita", resp["username"])
	}
}
