package configs

// AppVersion 应用程序版本.
const AppVersion = "1.0.0"
