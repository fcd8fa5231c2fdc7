package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Meta          Meta          `mapstructure:",squash"`
	Google        Google        `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	CampaignSync  CampaignSync  `mapstructure:",squash"`
	BudgetMonitor BudgetMonitor `mapstructure:",squash"`
}

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	MaxRetries     int           `mapstructure:"meta_max_retries"`
	RetryBackoff   time.Duration `mapstructure:"meta_retry_backoff"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

// RequireCredentials garante que o app do Meta está configurado antes de renovar tokens
func (m Meta) RequireCredentials() error {
	missing := []string{}
	if m.AppID == "" {
		missing = append(missing, "META_APP_ID")
	}
	if m.AppSecret == "" {
		missing = append(missing, "META_APP_SECRET")
	}
	if len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	return nil
}

type Google struct {
	TokenURL        string        `mapstructure:"google_token_url"`
	AdsURL          string        `mapstructure:"google_ads_url"`
	AdsVersion      string        `mapstructure:"google_ads_version"`
	ClientID        string        `mapstructure:"google_client_id"`
	ClientSecret    string        `mapstructure:"google_client_secret"`
	DeveloperToken  string        `mapstructure:"google_developer_token"`
	LoginCustomerID string        `mapstructure:"google_login_customer_id"`
	MaxRetries      int           `mapstructure:"google_max_retries"`
	RetryBackoff    time.Duration `mapstructure:"google_retry_backoff"`
	RequestTimeout  time.Duration `mapstructure:"google_request_timeout"`
}

// RequireCredentials valida as credenciais OAuth do Google
func (g Google) RequireCredentials() error {
	missing := []string{}
	if g.ClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if g.ClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	return nil
}

// RequireDeveloperToken valida o token exigido pela API do Google Ads
func (g Google) RequireDeveloperToken() error {
	if g.DeveloperToken == "" {
		return &MissingConfigError{Keys: []string{"GOOGLE_DEVELOPER_TOKEN"}}
	}
	return nil
}

type Redis struct {
	URL       string `mapstructure:"redis_url"`
	KeyPrefix string `mapstructure:"redis_key_prefix"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type CampaignSync struct {
	MetaCronSchedule    string        `mapstructure:"meta_campaign_sync_cron"`
	MetaEnabled         bool          `mapstructure:"meta_campaign_sync_enabled"`
	GoogleCronSchedule  string        `mapstructure:"google_campaign_sync_cron"`
	GoogleEnabled       bool          `mapstructure:"google_campaign_sync_enabled"`
	BatchSize           int           `mapstructure:"campaign_sync_batch_size"`
	BatchDelay          time.Duration `mapstructure:"campaign_sync_batch_delay"`
	LookbackDays        int           `mapstructure:"campaign_sync_lookback_days"`
	RequestDelaySeconds int           `mapstructure:"campaign_sync_request_delay_seconds"`
	IncludeAdGroups     bool          `mapstructure:"campaign_sync_include_ad_groups"`
	LockTTL             time.Duration `mapstructure:"campaign_sync_lock_ttl"`
}

type BudgetMonitor struct {
	CronSchedule string        `mapstructure:"budget_monitor_cron"`
	Enabled      bool          `mapstructure:"budget_monitor_enabled"`
	Workers      int           `mapstructure:"budget_monitor_workers"`
	LockTTL      time.Duration `mapstructure:"budget_monitor_lock_ttl"`
}

// MissingConfigError indica variáveis obrigatórias ausentes para uma operação
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_monitor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_RETRY_BACKOFF", "2s")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_MAX_RETRIES", 3)
	viper.SetDefault("GOOGLE_RETRY_BACKOFF", "2s")
	viper.SetDefault("GOOGLE_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "")

	// Sem REDIS_URL o lock dos jobs fica restrito ao processo
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_KEY_PREFIX", "budget-monitor")

	// Defaults para sincronização de campanhas (Meta a cada 6 horas, Google meia hora depois)
	viper.SetDefault("META_CAMPAIGN_SYNC_CRON", "0 */6 * * *")
	viper.SetDefault("META_CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("GOOGLE_CAMPAIGN_SYNC_CRON", "30 */6 * * *")
	viper.SetDefault("GOOGLE_CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("CAMPAIGN_SYNC_BATCH_SIZE", 3)            // 3 campanhas por lote
	viper.SetDefault("CAMPAIGN_SYNC_BATCH_DELAY", "1s")        // 1 segundo entre lotes
	viper.SetDefault("CAMPAIGN_SYNC_LOOKBACK_DAYS", 30)        // 30 dias de métricas
	viper.SetDefault("CAMPAIGN_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre integrações
	viper.SetDefault("CAMPAIGN_SYNC_INCLUDE_AD_GROUPS", true)
	viper.SetDefault("CAMPAIGN_SYNC_LOCK_TTL", "2h")

	// Defaults para o monitor de orçamento
	viper.SetDefault("BUDGET_MONITOR_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("BUDGET_MONITOR_ENABLED", false)
	viper.SetDefault("BUDGET_MONITOR_WORKERS", 4)
	viper.SetDefault("BUDGET_MONITOR_LOCK_TTL", "10m")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// NewDatabaseConfig carrega apenas o que o script de migração precisa, sem exigir AUTH_SECRET
func NewDatabaseConfig() (Database, error) {
	config, err := load()
	if err != nil {
		return Database{}, err
	}

	if config.Database.URL == "" {
		return Database{}, &MissingConfigError{Keys: []string{"DATABASE_URL"}}
	}

	return config.Database, nil
}

func load() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	return config, nil
}

func (c *Config) finalize() {
	if c.Meta.URL == "" {
		c.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(c.Meta.BaseURL, "/"), c.Meta.Version)
	}

	if c.CampaignSync.BatchSize < 1 {
		c.CampaignSync.BatchSize = 3
	}
	if c.CampaignSync.LookbackDays < 1 {
		c.CampaignSync.LookbackDays = 1
	}
	if c.BudgetMonitor.Workers < 1 {
		c.BudgetMonitor.Workers = 1
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Validate falha na inicialização quando faltam configurações sem as quais o serviço não sobe
func (c *Config) Validate() error {
	missing := []string{}
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.Secret == "" {
		missing = append(missing, "AUTH_SECRET")
	}
	if len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
