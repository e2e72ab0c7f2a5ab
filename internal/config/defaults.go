package config

const (
	defaultDataDir             = "~/.local/share/recipebox"
	defaultExportDir           = "~/Documents"
	defaultCatalogBaseURL      = "https://www.themealdb.com/api/json/v1/1"
	defaultCacheSize           = 128
	defaultCacheTTLSeconds     = 600
	defaultTickMillis          = 1000
	defaultNtfyRequestTimeout  = 10
	defaultTheme               = "light"
	defaultRecommendationCount = 5
	defaultLogLevel            = "normal"
	logFileName                = "recipebox.log"
	speechCacheDirName         = "tts-cache"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
		},
		Catalog: Catalog{
			BaseURL:         defaultCatalogBaseURL,
			CacheSize:       defaultCacheSize,
			CacheTTLSeconds: defaultCacheTTLSeconds,
		},
		Timers: Timers{
			TickMillis: defaultTickMillis,
			AlertSound: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Speech: Speech{
			Enabled: true,
		},
		UI: UI{
			DefaultTheme:        defaultTheme,
			RecommendationCount: defaultRecommendationCount,
			LogLevel:            defaultLogLevel,
		},
	}
}
