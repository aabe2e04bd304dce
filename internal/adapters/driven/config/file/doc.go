// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the lapak home directory.
//
// Adapters:
//   - ConfigStore: TOML-based application settings
//   - PromptStore: editable answer templates with embedded defaults
//   - ModelConfigStore: JSON chat model configuration
package file
