package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ringtones (
	schedule_id TEXT PRIMARY KEY,
	path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaultSettings := models.Settings{
			SoundEnabled:         constants.DefaultSoundEnabled,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
			RefreshIntervalMin:   constants.DefaultRefreshIntervalMin,
			DeviceID:             uuid.New().String(),
		}
		if err := s.SaveSettings(defaultSettings); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dosewatch init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingBackendURL:
			settings.BackendURL = value
		case constants.SettingSoundEnabled:
			settings.SoundEnabled = value == "true"
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDefaultRingtone:
			settings.DefaultRingtone = value
		case constants.SettingRefreshIntervalMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.RefreshIntervalMin); err != nil {
				return models.Settings{}, fmt.Errorf("parsing refresh_interval_min: %w", err)
			}
		case constants.SettingDeviceID:
			settings.DeviceID = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingBackendURL, settings.BackendURL); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingSoundEnabled, fmt.Sprintf("%v", settings.SoundEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingNotificationsEnabled, fmt.Sprintf("%v", settings.NotificationsEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingDefaultRingtone, settings.DefaultRingtone); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingRefreshIntervalMin, fmt.Sprintf("%d", settings.RefreshIntervalMin)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingDeviceID, settings.DeviceID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetRingtone(scheduleID string) (string, error) {
	var path string
	err := s.db.QueryRow("SELECT path FROM ringtones WHERE schedule_id = ?", scheduleID).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get ringtone: %w", err)
	}
	return path, nil
}

func (s *SQLiteStore) SetRingtone(scheduleID, path string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO ringtones (schedule_id, path) VALUES (?, ?)", scheduleID, path)
	if err != nil {
		return fmt.Errorf("failed to set ringtone: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearRingtone(scheduleID string) error {
	_, err := s.db.Exec("DELETE FROM ringtones WHERE schedule_id = ?", scheduleID)
	if err != nil {
		return fmt.Errorf("failed to clear ringtone: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllRingtones() (map[string]string, error) {
	rows, err := s.db.Query("SELECT schedule_id, path FROM ringtones")
	if err != nil {
		return nil, fmt.Errorf("failed to query ringtones: %w", err)
	}
	defer rows.Close()

	ringtones := make(map[string]string)
	for rows.Next() {
		var scheduleID, path string
		if err := rows.Scan(&scheduleID, &path); err != nil {
			return nil, fmt.Errorf("failed to scan ringtone: %w", err)
		}
		ringtones[scheduleID] = path
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ringtones: %w", err)
	}

	return ringtones, nil
}

type cachePayload struct {
	Prescriptions []models.Prescription `json:"prescriptions"`
	Schedules     []models.Schedule     `json:"schedules"`
	MedicineNames map[string]string     `json:"medicine_names"`
}

func (s *SQLiteStore) SaveCache(prescriptions []models.Prescription, schedules []models.Schedule, medicineNames map[string]string) error {
	payload, err := json.Marshal(cachePayload{
		Prescriptions: prescriptions,
		Schedules:     schedules,
		MedicineNames: medicineNames,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload: %w", err)
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO cache (key, payload) VALUES (?, ?)", "backend_data", string(payload))
	if err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadCache() ([]models.Prescription, []models.Schedule, map[string]string, error) {
	var raw string
	err := s.db.QueryRow("SELECT payload FROM cache WHERE key = ?", "backend_data").Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil, nil, fmt.Errorf("no cached backend data")
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load cache: %w", err)
	}

	var payload cachePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to unmarshal cache payload: %w", err)
	}

	return payload.Prescriptions, payload.Schedules, payload.MedicineNames, nil
}
