package config

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

const (
	defaultInactiveWalWriterTTL                = 120 * time.Second
	defaultReleaseInactiveInterval             = 30 * time.Second
	defaultRecreateDistressedSequencerAttempts = 3
	defaultStorageOpTimeout                    = 5 * time.Second
)

var cfgSequencer Sequencer

type Sequencer struct {
	LogLevel      string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFileName   string `json:"log_filename" toml:"log_filename" yaml:"log_filename"`
	PrettyLogging bool   `json:"pretty_logging" toml:"pretty_logging" yaml:"pretty_logging"`

	// QdbAddr is an etcd endpoint. Empty means in-memory qdb.
	QdbAddr          string `json:"qdb_addr" toml:"qdb_addr" yaml:"qdb_addr"`
	MemqdbBackupPath string `json:"memqdb_backup_path" toml:"memqdb_backup_path" yaml:"memqdb_backup_path"`

	InactiveWalWriterTTL                time.Duration `json:"inactive_wal_writer_ttl" toml:"inactive_wal_writer_ttl" yaml:"inactive_wal_writer_ttl"`
	ReleaseInactiveInterval             time.Duration `json:"release_inactive_interval" toml:"release_inactive_interval" yaml:"release_inactive_interval"`
	RecreateDistressedSequencerAttempts int           `json:"recreate_distressed_sequencer_attempts" toml:"recreate_distressed_sequencer_attempts" yaml:"recreate_distressed_sequencer_attempts"`
	MangleTableSystemNames              bool          `json:"mangle_table_system_names" toml:"mangle_table_system_names" yaml:"mangle_table_system_names"`
	StorageOpTimeout                    time.Duration `json:"storage_op_timeout" toml:"storage_op_timeout" yaml:"storage_op_timeout"`
}

// WithDefaults fills zero-valued tunables.
func (s *Sequencer) WithDefaults() *Sequencer {
	if s.InactiveWalWriterTTL <= 0 {
		s.InactiveWalWriterTTL = defaultInactiveWalWriterTTL
	}
	if s.ReleaseInactiveInterval <= 0 {
		s.ReleaseInactiveInterval = defaultReleaseInactiveInterval
	}
	if s.RecreateDistressedSequencerAttempts <= 0 {
		s.RecreateDistressedSequencerAttempts = defaultRecreateDistressedSequencerAttempts
	}
	if s.StorageOpTimeout <= 0 {
		s.StorageOpTimeout = defaultStorageOpTimeout
	}
	return s
}

// InactiveTTLMicros returns the idle window in microseconds.
func (s *Sequencer) InactiveTTLMicros() int64 {
	return s.InactiveWalWriterTTL.Microseconds()
}

// LoadSequencerCfg loads the sequencer configuration from the specified file path.
//
// Parameters:
//   - cfgPath (string): The path of the configuration file.
//
// Returns:
//   - string: JSON-formatted config
//   - error: An error if any occurred during the loading process.
func LoadSequencerCfg(cfgPath string) (string, error) {
	var scfg Sequencer
	file, err := os.Open(cfgPath)
	if err != nil {
		return "", err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Printf("failed to close config file: %v", err)
		}
	}(file)

	if err := initConfig(file, &scfg); err != nil {
		return "", err
	}
	cfgSequencer = *scfg.WithDefaults()

	configBytes, err := json.MarshalIndent(&cfgSequencer, "", "  ")
	if err != nil {
		return "", err
	}

	return string(configBytes), nil
}

// SequencerConfig returns a pointer to the Sequencer configuration.
func SequencerConfig() *Sequencer {
	return &cfgSequencer
}
