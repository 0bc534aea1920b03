// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// MongoURI holds the MongoDB connection string.
	MongoURI string

	// MongoDatabase is the name of the database holding the
	// user and item collections.
	MongoDatabase string

	// JWTSecret is the HMAC secret used to sign session tokens (HS256).
	JWTSecret string

	// TokenTTL is the lifetime of an issued session token.
	TokenTTL time.Duration

	// UploadDir is the directory profile images are written to when the
	// local file store is used.
	UploadDir string

	// AdminSetupPass guards the index-provisioning admin endpoint.
	AdminSetupPass string

	// S3Bucket enables the S3 file store when non-empty.
	S3Bucket string

	// S3Region is the region of the S3-compatible backend.
	S3Region string

	// S3Endpoint overrides the S3 endpoint for MinIO-style deployments.
	S3Endpoint string

	// S3AccessKey and S3SecretKey are static credentials for the
	// S3-compatible backend.
	S3AccessKey string
	S3SecretKey string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.MongoURI, "d", "mongodb://localhost:27017", "mongodb connection uri")
	flag.StringVar(&options.MongoDatabase, "db", "wad-01", "mongodb database name")
	flag.StringVar(&options.UploadDir, "uploads", "public", "base directory for uploaded files")
	flag.DurationVar(&options.TokenTTL, "token-ttl", 24*time.Hour, "session token lifetime")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// jsonDuration unmarshals either a duration string ("24h") or raw
// nanoseconds, so the config file accepts the same notation as the
// TOKEN_TTL environment variable.
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = jsonDuration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = jsonDuration(n)
	return nil
}

// applyConfigFile overlays the JSON config file at path onto o.
// A TokenTTL entry may be a duration string or raw nanoseconds; when
// the file omits it, the current value is kept.
func applyConfigFile(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// TokenTTL is shadowed to accept both notations; the remaining
	// fields unmarshal straight into o through the embedded pointer.
	type plainOptions Options
	aux := struct {
		*plainOptions
		TokenTTL jsonDuration
	}{plainOptions: (*plainOptions)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TokenTTL != 0 {
		o.TokenTTL = time.Duration(aux.TokenTTL)
	}
	return nil
}

// Parse parses the command-line flags and environment variables to set
// configuration values. A local .env file is loaded first if present.
// It returns a pointer to the Options struct containing the parsed
// configuration values.
func Parse() *Options {
	flag.Parse()

	// .env is optional; ignore the error when the file is absent.
	_ = godotenv.Load()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := applyConfigFile(options.Config, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		options.MongoURI = uri
	}
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		options.MongoDatabase = name
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("invalid TOKEN_TTL: %v", err)
		}
		options.TokenTTL = d
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		options.UploadDir = dir
	}
	if pass := os.Getenv("ADMIN_SETUP_PASS"); pass != "" {
		options.AdminSetupPass = pass
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		options.S3Bucket = bucket
	}
	if region := os.Getenv("S3_REGION"); region != "" {
		options.S3Region = region
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		options.S3Endpoint = endpoint
	}
	if key := os.Getenv("S3_ACCESS_KEY"); key != "" {
		options.S3AccessKey = key
	}
	if key := os.Getenv("S3_SECRET_KEY"); key != "" {
		options.S3SecretKey = key
	}

	return options
}
