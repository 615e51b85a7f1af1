package config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tool: ToolConfig{
			Name:        "migration-advisor",
			Version:     "1.0.0",
			Description: "Dependency and coupling analysis for service decomposition",
		},
		Extractor: ExtractorConfig{
			Extensions: []string{".java"},
			ExcludePatterns: []string{
				"**/test/**", "**/tests/**", "**/generated/**",
				"**/target/**", "**/build/**", "**/node_modules/**",
			},
			ConcernMarkers: map[string][]string{
				"injection":   {"Autowired", "Inject", "Resource", "Qualifier"},
				"persistence": {"Entity", "Table", "Repository", "Transactional", "Id", "Column"},
				"web":         {"Controller", "RestController", "RequestMapping", "GetMapping", "PostMapping", "Path"},
				"config":      {"Configuration", "Bean", "Value", "ConfigurationProperties"},
				"scheduling":  {"Scheduled", "Async", "EnableScheduling"},
			},
		},
		Graph: GraphConfig{
			External: ExternalPatternsConfig{
				Framework: []string{
					"org.springframework.", "jakarta.ws.", "javax.ws.",
					"io.micronaut.", "io.quarkus.", "javax.servlet.", "jakarta.servlet.",
				},
				Persistence: []string{
					"javax.persistence.", "jakarta.persistence.", "org.hibernate.",
					"java.sql.", "javax.sql.", "org.springframework.data.",
				},
				Logging: []string{
					"org.slf4j.", "org.apache.logging.", "ch.qos.logback.", "java.util.logging.",
				},
				Testing: []string{
					"org.junit.", "org.mockito.", "org.testng.", "org.assertj.", "org.hamcrest.",
				},
				Stdlib: []string{"java.", "javax.", "jakarta."},
			},
			SimilarNameMaxDistance: 2,
		},
		Metrics: MetricsConfig{
			AfferentThreshold:  10,
			EfferentThreshold:  10,
			DistanceThreshold:  0.7,
			HotspotMinCoupling: 5,
			CycleSizeHigh:      3,
			CycleSizeCritical:  6,
			Weights: WeightsConfig{
				MaxAfferent:     0.25,
				MaxEfferent:     0.20,
				MeanInstability: 0.15,
				MeanDistance:    0.15,
				CycleCount:      0.25,
			},
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 4,
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    ".migration-advisor/runs.db",
		},
		Output: OutputConfig{
			Formats:         []string{"json"},
			OutputDir:       ".",
			HotspotsTopN:    10,
			IncludeExternal: true,
		},
		Logging: LoggingConfig{
			Level:            "info",
			IncludeTimestamp: true,
		},
	}
}
