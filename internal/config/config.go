package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3AccessKey     string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"S3_SECRET_KEY"`
	S3PublicBucket  string `mapstructure:"S3_PUBLIC_BUCKET"`
	S3PrivateBucket string `mapstructure:"S3_PRIVATE_BUCKET"`
	S3PublicURL     string `mapstructure:"S3_PUBLIC_URL"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// Bind explicitly so viper sees the variables without a config file.
	viper.BindEnv("PORT")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("S3_ENDPOINT")
	viper.BindEnv("S3_REGION")
	viper.BindEnv("S3_ACCESS_KEY")
	viper.BindEnv("S3_SECRET_KEY")
	viper.BindEnv("S3_PUBLIC_BUCKET")
	viper.BindEnv("S3_PRIVATE_BUCKET")
	viper.BindEnv("S3_PUBLIC_URL")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// No config file is fine, env vars cover everything.
	}

	err = viper.Unmarshal(&config)
	return
}
