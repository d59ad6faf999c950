package config

type SMSConfig struct {
	Enabled          bool   `yaml:"enabled"`
	TwilioAccountSID string `yaml:"twilio_account_sid"`
	TwilioAuthToken  string `yaml:"twilio_auth_token"`
	FromNumber       string `yaml:"from_number"`
	WhatsappEnabled  bool   `yaml:"whatsapp_enabled"`
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Enabled:          getEnvAsBool("SMS_ENABLED", false),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber:       getEnv("TWILIO_FROM_NUMBER", ""),
		WhatsappEnabled:  getEnvAsBool("SMS_WHATSAPP_ENABLED", false),
	}
}
