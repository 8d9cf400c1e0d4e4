package logging

import (
	"fmt"

	"fiyattakip/internal/logging/adapters"
	"fiyattakip/internal/logging/types"
)

// AdapterFactory creates logging adapters based on configuration
type AdapterFactory struct{}

// NewAdapterFactory creates a new adapter factory
func NewAdapterFactory() *AdapterFactory {
	return &AdapterFactory{}
}

// CreateAdapter creates a logging adapter based on the provided configuration
func (f *AdapterFactory) CreateAdapter(adapterConfig types.AdapterConfig) (types.LogAdapter, error) {
	switch adapterConfig.Type {
	case "stdout":
		config := adapters.StdoutConfig{
			Format: getStringOption(adapterConfig.Options, "format", "json"),
		}
		return adapters.NewStdoutAdapter(adapterConfig.Name, config), nil
	case "file":
		config := adapters.FileConfig{
			FilePath:   getStringOption(adapterConfig.Options, "file_path", ""),
			Format:     getStringOption(adapterConfig.Options, "format", "json"),
			CreateDirs: getBoolOption(adapterConfig.Options, "create_dirs", true),
		}
		if config.FilePath == "" {
			return nil, fmt.Errorf("file_path is required for file adapter")
		}
		return adapters.NewFileAdapter(adapterConfig.Name, config)
	default:
		return nil, fmt.Errorf("unsupported adapter type: %s", adapterConfig.Type)
	}
}

func getStringOption(options map[string]interface{}, key string, defaultValue string) string {
	if value, exists := options[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getBoolOption(options map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := options[key]; exists {
		if boolVal, ok := value.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}
