package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"attriscope/hr"
	"attriscope/risk"
)

var database *sql.DB

// InitDB initializes the SQLite database used for prediction history.
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id TEXT PRIMARY KEY,
        age INTEGER,
        monthly_income INTEGER,
        years_at_company INTEGER,
        overtime VARCHAR(3),
        job_satisfaction INTEGER,
        work_life_balance INTEGER,
        predicted_label INTEGER,
        probability REAL,
        risk_level VARCHAR(10),
        created_at DATETIME
    );
    CREATE TABLE IF NOT EXISTS notes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        prediction_id TEXT NOT NULL,
        body TEXT NOT NULL,
        author VARCHAR(100),
        created_at DATETIME,
        FOREIGN KEY(prediction_id) REFERENCES predictions(id)
    );
    CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
    CREATE INDEX IF NOT EXISTS idx_notes_prediction ON notes(prediction_id);
    `

	_, err = database.Exec(query)
	return err
}

// Close releases the database handle. Intended for shutdown and tests.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// Record is one persisted prediction.
type Record struct {
	ID          string     `json:"id"`
	Profile     hr.Profile `json:"profile"`
	Label       int        `json:"label"`
	Probability float64    `json:"probability"`
	RiskLevel   risk.Level `json:"risk_level"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Note is a free-text HR note attached to a prediction.
type Note struct {
	ID           int64     `json:"id"`
	PredictionID string    `json:"prediction_id"`
	Body         string    `json:"body"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavePrediction persists one prediction and returns its generated id.
func SavePrediction(profile hr.Profile, label int, probability float64, level risk.Level) (string, error) {
	if database == nil {
		return "", errors.New("database not initialized")
	}

	id := uuid.NewString()
	_, err := database.Exec(`
        INSERT INTO predictions (
            id, age, monthly_income, years_at_company, overtime,
            job_satisfaction, work_life_balance,
            predicted_label, probability, risk_level, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, profile.Age, profile.MonthlyIncome, profile.YearsAtCompany, profile.OverTime,
		profile.JobSatisfaction, profile.WorkLifeBalance,
		label, probability, string(level), time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

// QueryRecent returns the newest predictions, most recent first.
func QueryRecent(limit int) ([]Record, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := database.Query(`
        SELECT id, age, monthly_income, years_at_company, overtime,
               job_satisfaction, work_life_balance,
               predicted_label, probability, risk_level, created_at
        FROM predictions
        ORDER BY created_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var level string
		err := rows.Scan(&r.ID, &r.Profile.Age, &r.Profile.MonthlyIncome, &r.Profile.YearsAtCompany,
			&r.Profile.OverTime, &r.Profile.JobSatisfaction, &r.Profile.WorkLifeBalance,
			&r.Label, &r.Probability, &level, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		r.RiskLevel = risk.Level(level)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetPrediction looks up one prediction by id.
func GetPrediction(id string) (*Record, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	var r Record
	var level string
	err := database.QueryRow(`
        SELECT id, age, monthly_income, years_at_company, overtime,
               job_satisfaction, work_life_balance,
               predicted_label, probability, risk_level, created_at
        FROM predictions WHERE id = ?`, id).
		Scan(&r.ID, &r.Profile.Age, &r.Profile.MonthlyIncome, &r.Profile.YearsAtCompany,
			&r.Profile.OverTime, &r.Profile.JobSatisfaction, &r.Profile.WorkLifeBalance,
			&r.Label, &r.Probability, &level, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.RiskLevel = risk.Level(level)
	return &r, nil
}

// RiskDistribution returns prediction counts per risk level for the charts.
func RiskDistribution() (map[risk.Level]int, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	rows, err := database.Query(`
        SELECT risk_level, COUNT(*) FROM predictions GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := map[risk.Level]int{
		risk.LevelLow:    0,
		risk.LevelMedium: 0,
		risk.LevelHigh:   0,
	}
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		distribution[risk.Level(level)] = count
	}
	return distribution, rows.Err()
}

// SaveNote attaches an HR note to an existing prediction.
func SaveNote(predictionID, body, author string) (*Note, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if body == "" {
		return nil, errors.New("note body is required")
	}
	if _, err := GetPrediction(predictionID); err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	result, err := database.Exec(`
        INSERT INTO notes (prediction_id, body, author, created_at)
        VALUES (?, ?, ?, ?)`, predictionID, body, author, createdAt)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Note{ID: id, PredictionID: predictionID, Body: body, Author: author, CreatedAt: createdAt}, nil
}

// QueryNotes returns the notes for a prediction, oldest first.
func QueryNotes(predictionID string) ([]Note, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	rows, err := database.Query(`
        SELECT id, prediction_id, body, author, created_at
        FROM notes WHERE prediction_id = ?
        ORDER BY created_at ASC, id ASC`, predictionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.PredictionID, &n.Body, &n.Author, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CountPredictions returns the total number of stored predictions.
func CountPredictions() (int, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}
	var count int
	err := database.QueryRow(`SELECT COUNT(*) FROM predictions`).Scan(&count)
	return count, err
}
