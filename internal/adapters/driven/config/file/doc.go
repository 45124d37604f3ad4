// Package file provides file-based configuration adapters: TOML settings
// under the medichain config directory and user-editable prompt files.
package file
