package di

import (
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/services/logger"
	"github.com/trezcool/msms/storage/inmem"
	"github.com/trezcool/msms/storage/jsonfile"
)

// Container holds the dependencies shared by the front ends.
type Container struct {
	Conf   *core.Config
	Logger *logsvc.RollbarLogger
	Store  *school.RecordStore

	logCloser io.Closer
}

// NewContainer wires the logger, the persister chosen by conf.Storage and the RecordStore.
// Log lines go to logOut, prefixed with logPrefix.
func NewContainer(conf *core.Config, logOut io.Writer, logPrefix string) (*Container, error) {
	std, closer, err := logsvc.NewStdLogger(logOut, logPrefix, conf.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "setting up logger")
	}
	logger := logsvc.NewRollbarLogger(std, conf)

	p, err := NewPersister(conf)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	store := school.NewRecordStore(p, logger, school.Options{SeedDemo: conf.SeedDemo})

	return &Container{
		Conf:      conf,
		Logger:    logger,
		Store:     store,
		logCloser: closer,
	}, nil
}

func NewPersister(conf *core.Config) (school.Persister, error) {
	switch conf.Storage {
	case core.StorageJSON:
		return jsonfile.New(conf.DataFile), nil
	case core.StorageMemory:
		return inmem.New(), nil
	default:
		return nil, errors.Errorf("unknown storage %q", conf.Storage)
	}
}

// Close flushes pending reports and closes the log file.
func (c *Container) Close() error {
	c.Logger.Flush()
	return c.logCloser.Close()
}
