package config

type MapsConfig struct {
	Provider     string `yaml:"provider"`
	GoogleAPIKey string `yaml:"google_api_key"`
	Region       string `yaml:"region"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider:     getEnv("MAPS_PROVIDER", "google"),
		GoogleAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		Region:       getEnv("MAPS_REGION", "lk"),
	}
}
