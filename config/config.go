// Package config loads the trainer's YAML hyperparameter document and
// prepares the per-model log directory.
package config

// TrainConfig holds optimization hyperparameters
type TrainConfig struct {
	Model        string  `yaml:"model"` // model name, also names the log dir
	Seed         int     `yaml:"seed"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	BatchSize    int     `yaml:"batch_size"`
	LogInterval  int     `yaml:"log_interval"`
	EvalInterval int     `yaml:"eval_interval"`
	LRDecay      float64 `yaml:"lr_decay"`
	SegmentSize  int     `yaml:"segment_size"`
}

// DataConfig holds dataset and frontend parameters
type DataConfig struct {
	TrainingFiles   string  `yaml:"training_files"`
	ValidationFiles string  `yaml:"validation_files"`
	SamplingRate    int     `yaml:"sampling_rate"`
	FilterLength    int     `yaml:"filter_length"`
	HopLength       int     `yaml:"hop_length"`
	WinLength       int     `yaml:"win_length"`
	MelChannels     int     `yaml:"mel_channels"`
	MelFmin         float64 `yaml:"mel_fmin"`
	MelFmax         float64 `yaml:"mel_fmax"`
}

// ModelConfig holds network architecture parameters
type ModelConfig struct {
	HiddenChannels int     `yaml:"hidden_channels"`
	FilterChannels int     `yaml:"filter_channels"`
	NHeads         int     `yaml:"n_heads"`
	NLayers        int     `yaml:"n_layers"`
	KernelSize     int     `yaml:"kernel_size"`
	PDropout       float64 `yaml:"p_dropout"`
	GinChannels    int     `yaml:"gin_channels"`
}

// Config is the full hyperparameter document. ModelDir is not part of the
// document; Setup injects the resolved log directory after loading.
type Config struct {
	Train TrainConfig `yaml:"train"`
	Data  DataConfig  `yaml:"data"`
	Model ModelConfig `yaml:"model"`

	ModelDir string `yaml:"-"`
}

// DefaultConfig returns the base training configuration
func DefaultConfig() *Config {
	return &Config{
		Train: TrainConfig{
			Model:        "sovits",
			Seed:         1234,
			Epochs:       10000,
			LearningRate: 2e-4,
			BatchSize:    16,
			LogInterval:  200,
			EvalInterval: 2000,
			LRDecay:      0.999875,
			SegmentSize:  8192,
		},
		Data: DataConfig{
			SamplingRate: 32000,
			FilterLength: 1024,
			HopLength:    256,
			WinLength:    1024,
			MelChannels:  80,
			MelFmin:      0,
			MelFmax:      16000,
		},
		Model: ModelConfig{
			HiddenChannels: 192,
			FilterChannels: 768,
			NHeads:         2,
			NLayers:        6,
			KernelSize:     3,
			PDropout:       0.1,
			GinChannels:    256,
		},
	}
}
