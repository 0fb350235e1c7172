package config

const (
	// DefaultPort matches the port the desktop client is built against
	DefaultPort = 8080

	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./library.db"

	// DefaultTasksDatabasePath is the default path for the background task queue database
	DefaultTasksDatabasePath = "./library-tasks.db"
)
