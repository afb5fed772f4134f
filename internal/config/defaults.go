package config

const (
	defaultDataDir   = "~/.local/share/moviesphere"
	defaultModelsDir = "~/.local/share/moviesphere/models"
	defaultFramesDir = "~/.local/share/moviesphere/frames"
	defaultLogDir    = "~/.local/share/moviesphere/logs"

	defaultReviewPendingScore   = 1
	defaultReviewRejectScore    = 3
	defaultNewsPendingScore     = 3
	defaultNewsRejectScore      = 7
	defaultNewsBodyWeight       = 2
	defaultStrikeValidityMonths = 3
	defaultBanStrikeCount       = 3

	defaultDetectorBinary      = "facedet"
	defaultDetectorConfidence  = 0.7
	defaultDetectorOverlap     = 0.4
	defaultActorThreshold      = 0.7
	defaultHappyThreshold      = 0.7
	defaultSadThreshold        = 0.8
	defaultAngryThreshold      = 0.7
	defaultAnalysisWorkers     = 2
	defaultFrameTimeoutSeconds = 30

	defaultQueuePollInterval  = 5
	defaultErrorRetryInterval = 30

	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60

	defaultSessionBackend   = "memory"
	defaultSessionKeyPrefix = "moviesphere:"
)

var defaultFrameExtensions = []string{".jpg", ".jpeg", ".png"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ModelsDir: defaultModelsDir,
			FramesDir: defaultFramesDir,
			LogDir:    defaultLogDir,
		},
		Moderation: Moderation{
			ReviewPendingScore:   defaultReviewPendingScore,
			ReviewRejectScore:    defaultReviewRejectScore,
			NewsPendingScore:     defaultNewsPendingScore,
			NewsRejectScore:      defaultNewsRejectScore,
			NewsBodyWeight:       defaultNewsBodyWeight,
			StrikeValidityMonths: defaultStrikeValidityMonths,
			BanStrikeCount:       defaultBanStrikeCount,
		},
		Analysis: Analysis{
			DetectorBinary:      defaultDetectorBinary,
			DetectorConfidence:  defaultDetectorConfidence,
			DetectorOverlap:     defaultDetectorOverlap,
			ActorThreshold:      defaultActorThreshold,
			HappyThreshold:      defaultHappyThreshold,
			SadThreshold:        defaultSadThreshold,
			AngryThreshold:      defaultAngryThreshold,
			FrameExtensions:     append([]string{}, defaultFrameExtensions...),
			Workers:             defaultAnalysisWorkers,
			FrameTimeoutSeconds: defaultFrameTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Strikes:        true,
			Bans:           true,
			Analysis:       true,
			Errors:         true,
		},
		Sessions: Sessions{
			Backend:   defaultSessionBackend,
			RedisAddr: "127.0.0.1:6379",
			KeyPrefix: defaultSessionKeyPrefix,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
