package config

import "os"

// Swapped in tests.
var (
	lookupEnv = os.LookupEnv
	setEnv    = os.Setenv
)
