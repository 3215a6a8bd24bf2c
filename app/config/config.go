package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	OpenAI OpenAI `yaml:"openai"`
	Search Search `yaml:"search"`
}

type OpenAI struct {
	// Model used to route a turn to answer / write_blog / edit_blog
	Router ModelConfig `yaml:"router" validate:"required"`
	// Model used for direct answers
	Answer ModelConfig `yaml:"answer" validate:"required"`
	// Model used by the research/write pipeline stages
	Crew ModelConfig `yaml:"crew" validate:"required"`
	// Model used to produce and revise the structured blog
	Editor ModelConfig `yaml:"editor" validate:"required"`
}

type ModelConfig struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Server struct {
	// Address the HTTP API listens on
	Listen string `yaml:"listen" example:":8080"`
	// Directory rendered blog PDFs are written to
	ArtifactDir string `yaml:"artifact_dir" example:"artifacts"`
}

type Search struct {
	// Optional MCP search server consulted by the research stage
	MCP MCPServer `yaml:"mcp"`
}

type MCPServer struct {
	// Command to start the stdio MCP server, empty disables search
	Command string `yaml:"command" example:"docker"`
	// Arguments for the command
	Args []string `yaml:"args" example:"[\"run\", \"--rm\", \"-i\", \"mcp/brave-search\"]"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Server.ArtifactDir == "" {
		result.Server.ArtifactDir = "artifacts"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
