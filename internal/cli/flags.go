package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	InputDir    string
	MediaDir    string
	DeckName    string
	OutputPath  string
	AudioFormat string
	ImageAPI    string
	SkipAudio   bool
	SkipImages  bool
	FailFast    bool
	Workers     int
	AnkiCSV     bool
	ListModels  bool
	Archive     bool

	// Audio provider selection
	AudioProvider string

	// OpenAI TTS flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// OpenAI image flags
	OpenAIImageModel   string
	OpenAIImageSize    string
	OpenAIImageQuality string
	OpenAIImageStyle   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckName:           "German Vocabulary",
		AudioFormat:        "mp3",
		AudioProvider:      "openai",
		ImageAPI:           "pixabay",
		Workers:            1,
		OpenAIModel:        "gpt-4o-mini-tts",
		OpenAIVoice:        "alloy",
		OpenAISpeed:        0.9,
		OpenAIImageModel:   "dall-e-3",
		OpenAIImageSize:    "1024x1024",
		OpenAIImageQuality: "standard",
		OpenAIImageStyle:   "natural",
	}
}
