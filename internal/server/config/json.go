package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/reminisce-care/reminisce/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
// Session validity is expressed in days. Zero values leave the corresponding
// Config fields untouched, so a partial file overlays cleanly over defaults.
type JsonConfig struct {
	EndpointAddrHTTP    string `json:"endpoint_addr_http"`
	DatabaseDSN         string `json:"database_dsn"`
	SessionValidityDays int    `json:"session_validity_days"`
	S3RootUser          string `json:"s3_root_user"`
	S3RootPassword      string `json:"s3_root_password"`
	S3Bucket            string `json:"s3_bucket"`
	S3Region            string `json:"s3_region"`
	S3BaseEndpoint      string `json:"s3_base_endpoint"`
	S3PublicBaseURL     string `json:"s3_public_base_url"`
	VisionEndpoint      string `json:"vision_endpoint"`
	VisionKey           string `json:"vision_key"`
	OpenAIAPIKey        string `json:"openai_api_key"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config command-line flags into the provided Config instance. If no
// file is named, nothing is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SessionValidityDays > 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDays) * 24 * time.Hour
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3PublicBaseURL != "" {
		config.S3PublicBaseURL = c.S3PublicBaseURL
	}
	if c.VisionEndpoint != "" {
		config.VisionEndpoint = c.VisionEndpoint
	}
	if c.VisionKey != "" {
		config.VisionKey = c.VisionKey
	}
	if c.OpenAIAPIKey != "" {
		config.OpenAIAPIKey = c.OpenAIAPIKey
	}
}
