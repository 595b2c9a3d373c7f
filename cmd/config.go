package cmd

// Config carries every runtime setting. Values come from the environment,
// loaded in main; the composition root never reads the environment itself.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret   string
	JWTTTLHours string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	KafkaHost               string
	KafkaStatusChangedTopic string

	RedisAddr     string
	RedisPassword string
}
