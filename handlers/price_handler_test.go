package handlers

import (
	"testing"
	"time"

	"kisanmandi_backend/models"
)

func TestGetPricesNewestFirst(t *testing.T) {
	app, db := newTestApp(t)

	base := time.Now().Add(-48 * time.Hour)
	quotes := []models.Price{
		{CropName: "Wheat", Location: "Punjab", Price: 2200, Date: base, Source: "demo"},
		{CropName: "Rice", Location: "Karnataka", Price: 3500, Date: base.Add(24 * time.Hour), Source: "demo"},
		{CropName: "Cotton", Location: "Gujarat", Price: 5500, Date: base.Add(12 * time.Hour), Source: "demo"},
	}
	for i := range quotes {
		if err := db.Create(&quotes[i]).Error; err != nil {
			t.Fatalf("failed to seed price: %v", err)
		}
	}

	status, resp := doJSON(t, app, "GET", "/api/prices", "", nil)
	wantStatus(t, status, 200, resp)

	data, _ := resp["data"].([]interface{})
	if len(data) != 3 {
		t.Fatalf("price count = %d, want 3", len(data))
	}

	got := make([]string, 0, len(data))
	for _, item := range data {
		got = append(got, item.(map[string]interface{})["crop_name"].(string))
	}
	want := []string{"Rice", "Cotton", "Wheat"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCreatePriceAdminOnly(t *testing.T) {
	app, db := newTestApp(t)
	farmer := createUser(t, db, "ramesh", models.RoleFarmer)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	body := map[string]interface{}{
		"crop_name": "Sugarcane",
		"location":  "Maharashtra",
		"price":     1800.0,
	}

	status, resp := doJSON(t, app, "POST", "/api/prices", bearerToken(t, farmer), body)
	wantStatus(t, status, 403, resp)

	status, resp = doJSON(t, app, "POST", "/api/prices", bearerToken(t, admin), body)
	wantStatus(t, status, 201, resp)

	// The appended quote carries the newest timestamp, so it leads the
	// list.
	status, resp = doJSON(t, app, "GET", "/api/prices", "", nil)
	wantStatus(t, status, 200, resp)
	data, _ := resp["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("price count = %d, want 1", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["crop_name"] != "Sugarcane" || first["source"] != "demo" {
		t.Fatalf("unexpected first quote: %v", first)
	}
}

func TestCreatePriceAppendKeepsOrder(t *testing.T) {
	app, db := newTestApp(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	old := models.Price{CropName: "Wheat", Location: "Punjab", Price: 2200,
		Date: time.Now().Add(-time.Hour), Source: "demo"}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}

	status, resp := doJSON(t, app, "POST", "/api/prices", bearerToken(t, admin),
		map[string]interface{}{"crop_name": "Tomato", "location": "Himachal", "price": 4000.0})
	wantStatus(t, status, 201, resp)

	status, resp = doJSON(t, app, "GET", "/api/prices", "", nil)
	wantStatus(t, status, 200, resp)
	data, _ := resp["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("price count = %d, want 2", len(data))
	}
	if data[0].(map[string]interface{})["crop_name"] != "Tomato" {
		t.Fatalf("newest quote not first: %v", data[0])
	}
}

func TestGetCategories(t *testing.T) {
	app, db := newTestApp(t)

	for _, category := range []models.Category{
		{Name: "Cereal", Slug: "cereal"},
		{Name: "Vegetable", Slug: "vegetable"},
	} {
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}
	}

	status, resp := doJSON(t, app, "GET", "/api/categories", "", nil)
	wantStatus(t, status, 200, resp)
	if resp["success"] != true {
		t.Fatalf("success = %v, want true", resp["success"])
	}
	if data, _ := resp["data"].([]interface{}); len(data) != 2 {
		t.Fatalf("category count = %d, want 2", len(data))
	}
}
