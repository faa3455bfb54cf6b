package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alias1177/Advisor/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id SERIAL PRIMARY KEY,
			ticker TEXT NOT NULL,
			overall_direction TEXT NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			rating TEXT NOT NULL,
			opportunity_level TEXT NOT NULL,
			risk_adjusted_score DOUBLE PRECISION NOT NULL,
			features JSONB,
			model_version TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS recommendations (
			id SERIAL PRIMARY KEY,
			ticker TEXT NOT NULL,
			trade_type TEXT NOT NULL,
			direction TEXT NOT NULL,
			entry_price DOUBLE PRECISION NOT NULL,
			target_price DOUBLE PRECISION NOT NULL,
			stop_loss DOUBLE PRECISION NOT NULL,
			position_size INTEGER NOT NULL,
			risk_reward_ratio DOUBLE PRECISION NOT NULL,
			probability_of_profit DOUBLE PRECISION NOT NULL,
			max_risk DOUBLE PRECISION NOT NULL,
			max_reward DOUBLE PRECISION NOT NULL,
			time_horizon TEXT NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			rating TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			reasons JSONB,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// SaveAnalysis persists the composite rating and feature set of one analysis.
func (db *DB) SaveAnalysis(a models.Analysis) error {
	featuresJSON, err := json.Marshal(a.Features)
	if err != nil {
		return fmt.Errorf("marshaling features: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO analyses (
			ticker, overall_direction, confidence_score, rating,
			opportunity_level, risk_adjusted_score, features, model_version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		a.Ticker,
		string(a.CompositeScore.OverallDirection),
		a.CompositeScore.ConfidenceScore,
		string(a.CompositeScore.Rating),
		string(a.CompositeScore.OpportunityLevel),
		a.CompositeScore.RiskAdjustedScore,
		featuresJSON,
		a.ModelVersion,
		a.Timestamp,
	)
	return err
}

// SaveRecommendations persists a batch of recommendations.
func (db *DB) SaveRecommendations(recs []models.TradeRecommendation) error {
	for _, rec := range recs {
		reasonsJSON, err := json.Marshal(rec.Reasons)
		if err != nil {
			return fmt.Errorf("marshaling reasons: %w", err)
		}

		_, err = db.Exec(`
			INSERT INTO recommendations (
				ticker, trade_type, direction, entry_price, target_price, stop_loss,
				position_size, risk_reward_ratio, probability_of_profit, max_risk,
				max_reward, time_horizon, confidence_score, rating, risk_level,
				reasons, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`,
			rec.Ticker,
			string(rec.TradeType),
			string(rec.Direction),
			rec.EntryPrice,
			rec.TargetPrice,
			rec.StopLoss,
			rec.PositionSize,
			rec.RiskRewardRatio,
			rec.ProbabilityOfProfit,
			rec.MaxRisk,
			rec.MaxReward,
			rec.TimeHorizon,
			rec.ConfidenceScore,
			string(rec.Rating),
			string(rec.RiskLevel),
			reasonsJSON,
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("inserting recommendation for %s: %w", rec.Ticker, err)
		}
	}
	return nil
}

// RecentRecommendations returns the newest recommendations, most recent first.
func (db *DB) RecentRecommendations(limit int) ([]models.TradeRecommendation, error) {
	rows, err := db.Query(`
		SELECT ticker, trade_type, direction, entry_price, target_price, stop_loss,
			position_size, risk_reward_ratio, probability_of_profit, max_risk,
			max_reward, time_horizon, confidence_score, rating, risk_level, reasons
		FROM recommendations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.TradeRecommendation
	for rows.Next() {
		var rec models.TradeRecommendation
		var reasonsJSON []byte
		err := rows.Scan(
			&rec.Ticker, &rec.TradeType, &rec.Direction, &rec.EntryPrice,
			&rec.TargetPrice, &rec.StopLoss, &rec.PositionSize, &rec.RiskRewardRatio,
			&rec.ProbabilityOfProfit, &rec.MaxRisk, &rec.MaxReward, &rec.TimeHorizon,
			&rec.ConfidenceScore, &rec.Rating, &rec.RiskLevel, &reasonsJSON,
		)
		if err != nil {
			return nil, err
		}
		if len(reasonsJSON) > 0 {
			if err := json.Unmarshal(reasonsJSON, &rec.Reasons); err != nil {
				return nil, fmt.Errorf("unmarshaling reasons: %w", err)
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
