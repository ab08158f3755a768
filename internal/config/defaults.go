package config

const (
	defaultLogDir         = "~/.local/share/plexify/logs"
	defaultPreset         = "veryfast"
	defaultCRF            = 23
	defaultAudioBitrate   = "128k"
	defaultPollInterval   = 60
	defaultRetryDelay     = 10
	defaultBackgroundNice = 19
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Encoding: Encoding{
			Preset:       defaultPreset,
			CRF:          defaultCRF,
			AudioBitrate: defaultAudioBitrate,
		},
		Worker: Worker{
			PollInterval:   defaultPollInterval,
			RetryDelay:     defaultRetryDelay,
			BackgroundNice: defaultBackgroundNice,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
