package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, MailProviderLog, cfg.Mail.Provider)
	assert.Equal(t, 10*time.Second, cfg.Mail.SendTimeout)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("MAIL_PROVIDER", "smtp")
	v.Set("MAIL_SEND_TIMEOUT_SECONDS", "3")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, MailProviderSMTP, cfg.Mail.Provider)
	assert.Equal(t, 3*time.Second, cfg.Mail.SendTimeout)
}

func TestFromViper_IntInvalidoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestFromViper_Errores(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
	}{
		{name: "storage desconocido", set: map[string]string{"STORAGE_DRIVER": "redis"}},
		{name: "mail desconocido", set: map[string]string{"MAIL_PROVIDER": "pigeon"}},
		{name: "postmark sin token", set: map[string]string{"MAIL_PROVIDER": "postmark"}},
		{name: "sendgrid sin key", set: map[string]string{"MAIL_PROVIDER": "sendgrid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss word", DBName: "accounts", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%20word@db:5432/accounts?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
