// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Company  CompanyConfig
	Document DocumentConfig
}

type AppConfig struct {
	Env      string
	LogLevel string
	Seed     bool
	// EnvFile reports whether a .env file was read.
	EnvFile bool
}

// CompanyConfig is the letterhead printed on new documents.
type CompanyConfig struct {
	Name    string
	Address string
	GSTIN   string
	Email   string
	Mobile  string
}

// DocumentConfig pre-fills the create form.
type DocumentConfig struct {
	InvoiceType    string
	Title          string
	PlaceOfSupply  string
	TermsOfPayment string
	Notes          string
	Terms          string
	HSNSAC         string
	GSTRate        float64
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Load reads .env (if present) into the process environment and then builds
// the config from environment variables over the defaults below.
func Load() *Config {
	envFile := godotenv.Load() == nil

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Seed:     v.GetBool("SEED_SAMPLE_DATA"),
			EnvFile:  envFile,
		},
		Company: CompanyConfig{
			Name:    v.GetString("COMPANY_NAME"),
			Address: v.GetString("COMPANY_ADDRESS"),
			GSTIN:   v.GetString("COMPANY_GSTIN"),
			Email:   v.GetString("COMPANY_EMAIL"),
			Mobile:  v.GetString("COMPANY_MOBILE"),
		},
		Document: DocumentConfig{
			InvoiceType:    v.GetString("DOC_INVOICE_TYPE"),
			Title:          v.GetString("DOC_TITLE"),
			PlaceOfSupply:  v.GetString("DOC_PLACE_OF_SUPPLY"),
			TermsOfPayment: v.GetString("DOC_TERMS_OF_PAYMENT"),
			Notes:          v.GetString("DOC_NOTES"),
			Terms:          v.GetString("DOC_TERMS"),
			HSNSAC:         v.GetString("DOC_HSN_SAC"),
			GSTRate:        v.GetFloat64("DOC_GST_RATE"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_SAMPLE_DATA", false)

	v.SetDefault("COMPANY_NAME", "PARK GRAND HOSPITALITY")
	v.SetDefault("COMPANY_ADDRESS", "H.No: 708 A, Ascona Cana, Benaulim, South-Goa, Goa 403717")
	v.SetDefault("COMPANY_GSTIN", "30ACEPL2168C1Z8")
	v.SetDefault("COMPANY_EMAIL", "sots.parkgrand@gmail.com")
	v.SetDefault("COMPANY_MOBILE", "9552433413")

	v.SetDefault("DOC_INVOICE_TYPE", "invoice")
	v.SetDefault("DOC_TITLE", "Quotation")
	v.SetDefault("DOC_PLACE_OF_SUPPLY", "Goa")
	v.SetDefault("DOC_TERMS_OF_PAYMENT", "On Arrival")
	v.SetDefault("DOC_NOTES", "The payment has to be made on arrival at the property. The booking is non cancellable and non-amendable.")
	v.SetDefault("DOC_TERMS", "1. Goods once sold will not be taken back or exchanged\n2. All disputes are subject to [ENTER_YOUR_CITY_NAME] Jurisdiction only.")
	v.SetDefault("DOC_HSN_SAC", "996311")
	v.SetDefault("DOC_GST_RATE", 12)
}
