package models

// Config holds database, redis and token settings loaded from config.json.
type Config struct {
	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	ListenAddr string `json:"listen_addr"`

	// SecretKey is the process-wide signing secret. Session and voucher
	// keys are derived from it with domain separation (see auth.NewKeys).
	SecretKey string `json:"secret_key"`

	SessionTTLMinutes    int `json:"session_ttl_minutes"`
	LedgerRetentionHours int `json:"ledger_retention_hours"`
}
