package auth

// Config configures the MongoDB account storage.
type Config struct {
	Collection   string `env:"MONGODB_USERS_COLLECTION" envDefault:"users"`
	HistoryLimit int    `env:"LOGIN_HISTORY_LIMIT" envDefault:"100"` // 0 keeps every entry
}
