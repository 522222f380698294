package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/models"
)

func TestClient_GetPrescriptions(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/prescriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Prescription{
			{ID: "p1", MedicineID: "m1", Dosage: "10mg", StartDate: "2024-01-01", EndDate: "2024-12-31"},
		})
	}))
	defer server.Close()

	client, err := New(server.URL, "secret-token")
	if err != nil {
		t.Fatal(err)
	}

	prescriptions, err := client.GetPrescriptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prescriptions) != 1 || prescriptions[0].ID != "p1" {
		t.Errorf("unexpected prescriptions: %+v", prescriptions)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
}

func TestClient_GetSchedules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/schedules" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Schedule{
			{ID: "s1", PrescriptionID: "p1", Time: "08:00", Repeat: models.RepeatWeekly, Weekday: "monday", NotificationEnabled: true},
			{ID: "s2", PrescriptionID: "p1", Time: "20:00", Repeat: models.RepeatEveryXDays, IntervalDays: 9000},
		})
	}))
	defer server.Close()

	client, err := New(server.URL, "")
	if err != nil {
		t.Fatal(err)
	}

	schedules, err := client.GetSchedules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedules) != 2 || schedules[0].Repeat != models.RepeatWeekly {
		t.Errorf("unexpected schedules: %+v", schedules)
	}
	if got := schedules[1].IntervalDays; got != constants.MaxIntervalDays {
		t.Errorf("out-of-range interval should be clamped, got %d", got)
	}
}

func TestClient_GetMedicineNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"m1": "Lisinopril"})
	}))
	defer server.Close()

	client, err := New(server.URL, "")
	if err != nil {
		t.Fatal(err)
	}

	names, err := client.GetMedicineNames()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names["m1"] != "Lisinopril" {
		t.Errorf("unexpected names: %+v", names)
	}
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New(server.URL, "")
	if err != nil {
		t.Fatal(err)
	}

	prescriptions, err := client.GetPrescriptions()
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if prescriptions != nil {
		t.Errorf("failed fetch must not return partial data, got %+v", prescriptions)
	}
}

func TestClient_InvalidURL(t *testing.T) {
	if _, err := New("not a url", ""); err == nil {
		t.Error("expected error for invalid backend URL")
	}
}
