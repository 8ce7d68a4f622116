package schema

import "time"

// StoreStatus represents the status of the persistence store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalUsers       int              `json:"total_users"`
	TotalMessages    int              `json:"total_messages"`
	TotalAnalyses    int              `json:"total_analyses"`
	LastAnalysisID   int64            `json:"last_analysis_id"`
	LastAnalysisTime time.Time        `json:"last_analysis_time"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// UserRecord represents a row from the clio_users table.
type UserRecord struct {
	ID           int64
	Email        string
	Name         string
	Service      Service
	PasswordHash string
	CreatedAt    time.Time
}

// AnalysisRecord represents a row from the clio_analyses table.
type AnalysisRecord struct {
	ID                int64
	UserID            *int64 // nil for anonymous analyses
	DominantArchetype ArchetypeKey
	ArchetypeScores   ArchetypeScores
	SubscaleScores    SubscaleScores
	Responses         Response
	CreatedAt         time.Time
}

// MarketingProfileRecord represents a row from the clio_marketing_profiles table.
type MarketingProfileRecord struct {
	ID        int64
	UserID    *int64
	Brand     BrandProfile
	ICP       ICPProfile
	CreatedAt time.Time
}

// Session is an authenticated login owned by the presentation layer.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Service   Service   `json:"service"`
	CreatedAt time.Time `json:"created_at"`
}
