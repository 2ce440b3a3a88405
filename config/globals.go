package config

// GlobalFlags contains the flags shared by every command
type GlobalFlags struct {
	// Configuration file; empty means the default location
	ConfigPath string
	// EnvFile is a dotenv file loaded before credentials are resolved
	EnvFile string

	// Connection flags
	Login     string
	Insecure  bool
	Transport string

	// Output flags
	Verbose bool
	NoColor bool
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
