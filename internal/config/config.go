package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	MySQLUser     string `envconfig:"MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"MYSQL_PASSWORD" default:""`
	MySQLHost     string `envconfig:"MYSQL_HOST" default:"localhost"`
	MySQLPort     string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDatabase string `envconfig:"MYSQL_DATABASE" default:"dairystore"`

	// Empty address disables the catalog cache.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	// Empty URL disables event publishing.
	RabbitURL      string `envconfig:"RABBITMQ_URL" default:""`
	RabbitExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"store.exchange"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`

	FromEmail     string `envconfig:"DEFAULT_FROM_EMAIL" default:"no-reply@shivorganics.local"`
	OperatorEmail string `envconfig:"ORDER_NOTIFICATION_EMAIL" default:""`

	TemplateGlob string `envconfig:"TEMPLATE_GLOB" default:"web/templates/*.html"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
